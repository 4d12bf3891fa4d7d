// Package resolution implements the entity resolution pipeline: ingest,
// block, compare, auto-decide, merge, split (spec.md §4.3).
package resolution

import (
	"sort"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/banking/aml-core/internal/matching"
	"github.com/google/uuid"
)

const overallRejectBelow = 0.5
const autoMergeOverall = 0.98

// Block restricts candidate master entities to those of the same kind as
// the source record. Implementers may add further blocking keys; this
// reference implementation blocks on kind alone, matching §4.3's minimum
// requirement.
func Block(record domain.SourceRecord, candidates []domain.MasterEntity) []domain.MasterEntity {
	out := make([]domain.MasterEntity, 0, len(candidates))
	for _, c := range candidates {
		if c.Kind == record.Kind {
			out = append(out, c)
		}
	}
	return out
}

// Compare computes the pairwise field-weighted similarity between a source
// record and a master entity using the given rule's field weights. An
// exact identifier match short-circuits to overall 1.0. Returns ok=false,
// signalling "no candidate", when overall is below 0.5; overall and the
// field scores are still returned in that case.
func Compare(record domain.SourceRecord, entity domain.MasterEntity, rule domain.ResolutionRule) (overall float64, fieldScores map[string]float64, ok bool) {
	for _, rid := range record.Identifiers {
		for _, eid := range entity.Identifiers {
			if matching.IdentifierMatch(rid, eid) {
				return 1.0, map[string]float64{"identifier": 1.0}, true
			}
		}
	}

	fieldScores = make(map[string]float64, len(rule.FieldWeights))
	for field, weight := range rule.FieldWeights {
		var score float64
		switch field {
		case "name":
			score = bestNameScore(record.Names, entity.NameVariants)
		case "dob":
			score = dobScore(record.DateOfBirth, entity.DateOfBirth)
		case "address":
			score = bestAddressScore(record.Addresses, entity.Addresses)
		case "identifier":
			score = 0.0 // exact match already handled above; partial identifier credit is not awarded
		}
		fieldScores[field] = score
		overall += weight * score
	}

	if overall < overallRejectBelow {
		return overall, fieldScores, false
	}
	return overall, fieldScores, true
}

func bestNameScore(recordNames, entityVariants []domain.NameVariant) float64 {
	best := 0.0
	for _, rn := range recordNames {
		for _, ev := range entityVariants {
			if s := matching.NameSimilarity(rn.Name, ev.Name); s > best {
				best = s
			}
		}
	}
	return best
}

func dobScore(a, b *time.Time) float64 {
	if a == nil || b == nil {
		return 0.0
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay == by && am == bm && ad == bd {
		return 1.0
	}
	return 0.0
}

func bestAddressScore(recordAddrs, entityAddrs []domain.Address) float64 {
	best := 0.0
	for _, ra := range recordAddrs {
		for _, ea := range entityAddrs {
			if s := matching.AddressSimilarity(ra, ea); s > best {
				best = s
			}
		}
	}
	return best
}

// Decision is the outcome of evaluating one source record against its
// blocked candidates under the declarative resolution rules.
type Decision struct {
	AutoMerge     bool
	MergeInto     uuid.UUID
	Candidate     *domain.MatchCandidate
	MatchedRule   string
}

// AutoDecide evaluates rules in priority order against blocked candidates
// and returns the first rule that produces a candidate above its
// threshold. If the best candidate clears AutoMergeThreshold and the rule
// permits auto-merge, the record should be merged immediately; otherwise a
// pending MatchCandidate is produced for human review (§4.3).
func AutoDecide(record domain.SourceRecord, candidates []domain.MasterEntity, rules []domain.ResolutionRule) (*Decision, error) {
	applicable := make([]domain.ResolutionRule, 0, len(rules))
	for _, r := range rules {
		if r.Active && r.EntityKind == record.Kind {
			applicable = append(applicable, r)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool { return applicable[i].Priority < applicable[j].Priority })

	var best struct {
		overall float64
		entity  domain.MasterEntity
		rule    domain.ResolutionRule
		scores  map[string]float64
		found   bool
	}

	for _, rule := range applicable {
		blocked := Block(record, candidates)
		for _, candidate := range blocked {
			overall, scores, ok := Compare(record, candidate, rule)
			if !ok {
				continue
			}
			if overall < rule.Threshold {
				continue
			}
			if !best.found || overall > best.overall {
				best = struct {
					overall float64
					entity  domain.MasterEntity
					rule    domain.ResolutionRule
					scores  map[string]float64
					found   bool
				}{overall, candidate, rule, scores, true}
			}
		}
		if best.found {
			break // rules evaluated in priority order until one fires
		}
	}

	if !best.found {
		return &Decision{}, nil
	}

	if best.overall >= autoMergeOverall && best.overall >= best.rule.AutoMergeThreshold && best.rule.AutoMergeEnabled {
		return &Decision{AutoMerge: true, MergeInto: best.entity.EntityID, MatchedRule: best.rule.RuleCode}, nil
	}

	candidate := &domain.MatchCandidate{
		CandidateID:    uuid.New(),
		SourceRecordID: record.RecordID,
		MasterEntityID: best.entity.EntityID,
		Overall:        best.overall,
		Confidence:     domain.ConfidenceLabel(best.overall),
		RuleCode:       best.rule.RuleCode,
		FieldScores:    best.scores,
		Status:         domain.CandidatePending,
		CreatedAt:      time.Now(),
	}
	return &Decision{Candidate: candidate, MatchedRule: best.rule.RuleCode}, nil
}

// Merge performs union-with-dedup of a source record into a master entity:
// appends non-duplicate name variants, addresses, identifiers,
// relationships, the source record ID and system, recomputes the
// completeness score, and appends an immutable merge-history entry.
// Calling Merge a second time with the same record already merged is a
// no-op (idempotence, §8).
func Merge(entity *domain.MasterEntity, record domain.SourceRecord, mergedBy uuid.UUID, confidence float64, ruleCode string) {
	for _, existing := range entity.SourceRecordIDs {
		if existing == record.RecordID {
			return
		}
	}

	entity.NameVariants = mergeNameVariants(entity.NameVariants, record.Names)
	entity.Addresses = mergeAddresses(entity.Addresses, record.Addresses)
	entity.Identifiers = mergeIdentifiers(entity.Identifiers, record.Identifiers)
	if entity.DateOfBirth == nil && record.DateOfBirth != nil {
		entity.DateOfBirth = record.DateOfBirth
	}
	entity.Nationalities = mergeStrings(entity.Nationalities, record.Nationalities)
	entity.SourceRecordIDs = append(entity.SourceRecordIDs, record.RecordID)
	entity.SourceSystems = mergeStrings(entity.SourceSystems, []string{record.SourceSystem})

	entity.MergeHistory = append(entity.MergeHistory, domain.MergeHistoryEntry{
		MergedEntityID: record.RecordID,
		MergedAt:       time.Now(),
		MergedBy:       mergedBy,
		Confidence:     confidence,
		RuleCode:       ruleCode,
	})

	entity.CompletenessScore = QualityScore(*entity)
	entity.QualityScore = entity.CompletenessScore
	entity.LastResolvedAt = time.Now()
	entity.UpdatedAt = entity.LastResolvedAt
}

func nameVariantKey(nv domain.NameVariant) string {
	return string(nv.Type) + "|" + nv.Name
}

func mergeNameVariants(existing, incoming []domain.NameVariant) []domain.NameVariant {
	seen := make(map[string]struct{}, len(existing))
	for _, nv := range existing {
		seen[nameVariantKey(nv)] = struct{}{}
	}
	for _, nv := range incoming {
		if nv.IsPrimary {
			// never introduce a second primary; demote incoming primaries
			for _, e := range existing {
				if e.IsPrimary {
					nv.IsPrimary = false
					break
				}
			}
		}
		key := nameVariantKey(nv)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		existing = append(existing, nv)
	}
	return existing
}

func mergeAddresses(existing, incoming []domain.Address) []domain.Address {
	for _, addr := range incoming {
		dup := false
		for _, e := range existing {
			if e.Type == addr.Type && e.Street1 == addr.Street1 && e.City == addr.City && e.Country == addr.Country {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, addr)
		}
	}
	return existing
}

func mergeIdentifiers(existing, incoming []domain.Identifier) []domain.Identifier {
	seen := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		seen[id.Key()] = struct{}{}
	}
	for _, id := range incoming {
		key := id.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		existing = append(existing, id)
	}
	return existing
}

func mergeStrings(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range incoming {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		existing = append(existing, s)
	}
	return existing
}

// QualityScore computes the percentage of {primary_name, DOB, >=1
// identifier, >=1 address, >=1 nationality} populated on a master entity,
// with nationalities counting half weight (§4.3).
func QualityScore(entity domain.MasterEntity) float64 {
	const fullWeight = 1.0
	const nationalityWeight = 0.5
	total := fullWeight*4 + nationalityWeight
	var got float64

	if _, ok := entity.PrimaryNameVariant(); ok {
		got += fullWeight
	}
	if entity.DateOfBirth != nil {
		got += fullWeight
	}
	if len(entity.Identifiers) > 0 {
		got += fullWeight
	}
	if len(entity.Addresses) > 0 {
		got += fullWeight
	}
	if len(entity.Nationalities) > 0 {
		got += nationalityWeight
	}
	return (got / total) * 100
}

// Split partitions the source records of one master entity into groups,
// creating a new master entity per group (seeded from the group's first
// record) and merging the remaining records of that group sequentially.
// The caller is responsible for removing the original entity once Split
// returns.
func Split(records []domain.SourceRecord, assignments map[string][]uuid.UUID, splitBy uuid.UUID) ([]domain.MasterEntity, error) {
	if len(assignments) == 0 {
		return nil, errs.Invalid("split requires at least one group")
	}
	byID := make(map[uuid.UUID]domain.SourceRecord, len(records))
	for _, r := range records {
		byID[r.RecordID] = r
	}

	var result []domain.MasterEntity
	for groupName, recordIDs := range assignments {
		if len(recordIDs) == 0 {
			return nil, errs.Invalid("split group " + groupName + " has no records")
		}
		var groupRecords []domain.SourceRecord
		for _, id := range recordIDs {
			rec, ok := byID[id]
			if !ok {
				return nil, errs.Invalid("split references unknown record id")
			}
			groupRecords = append(groupRecords, rec)
		}

		first := groupRecords[0]
		now := time.Now()
		entity := domain.MasterEntity{
			EntityID:        uuid.New(),
			Kind:            first.Kind,
			PrimaryName:     first.PrimaryName(),
			NameVariants:    first.Names,
			Identifiers:     first.Identifiers,
			Addresses:       first.Addresses,
			DateOfBirth:     first.DateOfBirth,
			Nationalities:   first.Nationalities,
			SourceRecordIDs: []uuid.UUID{first.RecordID},
			SourceSystems:   []string{first.SourceSystem},
			LastResolvedAt:  now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		entity.CompletenessScore = QualityScore(entity)
		entity.QualityScore = entity.CompletenessScore

		for _, rec := range groupRecords[1:] {
			Merge(&entity, rec, splitBy, 1.0, "SPLIT_REGROUP")
		}
		result = append(result, entity)
	}
	return result, nil
}
