package domain

import (
	"time"

	"github.com/banking/aml-core/internal/errs"
	"github.com/google/uuid"
)

// EntityKind represents the kind of real-world party a master entity models
type EntityKind string

const (
	EntityKindIndividual   EntityKind = "INDIVIDUAL"
	EntityKindOrganization EntityKind = "ORGANIZATION"
	EntityKindAccount      EntityKind = "ACCOUNT"
	EntityKindTransaction  EntityKind = "TRANSACTION"
)

// NameVariantType classifies a name variant on a master entity
type NameVariantType string

const (
	NameVariantLegal   NameVariantType = "LEGAL"
	NameVariantAlias   NameVariantType = "ALIAS"
	NameVariantMaiden  NameVariantType = "MAIDEN"
	NameVariantTrading NameVariantType = "TRADING"
	NameVariantFormer  NameVariantType = "FORMER"
)

// NameVariant is one name form carried on a master entity or source record
type NameVariant struct {
	Name       string          `json:"name"`
	Type       NameVariantType `json:"type"`
	IsPrimary  bool            `json:"is_primary"`
	Confidence float64         `json:"confidence"` // [0,1]
}

// IdentifierType classifies an identifier
type IdentifierType string

const (
	IdentifierTaxID         IdentifierType = "TAX_ID"
	IdentifierPassport      IdentifierType = "PASSPORT"
	IdentifierAccountNumber IdentifierType = "ACCOUNT_NUMBER"
	IdentifierPhone         IdentifierType = "PHONE"
	IdentifierEmail         IdentifierType = "EMAIL"
)

// Identifier is a typed, issuer-scoped identifying value
type Identifier struct {
	Type            IdentifierType `json:"type"`
	Value           string         `json:"value"`
	IssuingCountry  string         `json:"issuing_country"`
	Verified        bool           `json:"verified"`
}

// Key returns the (type, value, issuing_country) uniqueness key, matching on
// value case-insensitively per spec.md §4.1 identifier_match semantics.
func (i Identifier) Key() string {
	return string(i.Type) + "|" + normalizeFold(i.Value) + "|" + i.IssuingCountry
}

// AddressType classifies an address
type AddressType string

const (
	AddressResidential AddressType = "RESIDENTIAL"
	AddressBusiness    AddressType = "BUSINESS"
	AddressMailing     AddressType = "MAILING"
	AddressRegistered  AddressType = "REGISTERED"
)

// Address carries a postal address with an optional validity interval
type Address struct {
	Type      AddressType `json:"type"`
	Street1   string      `json:"street1"`
	City      string      `json:"city"`
	PostalCode string     `json:"postal_code"`
	Country   string      `json:"country"`
	ValidFrom *time.Time  `json:"valid_from,omitempty"`
	ValidTo   *time.Time  `json:"valid_to,omitempty"`
}

// RelationshipType classifies a relationship between two entities
type RelationshipType string

const (
	RelationshipBeneficialOwner RelationshipType = "BENEFICIAL_OWNER"
	RelationshipDirector        RelationshipType = "DIRECTOR"
	RelationshipHousehold       RelationshipType = "HOUSEHOLD"
	RelationshipAssociate       RelationshipType = "ASSOCIATE"
	RelationshipCounterparty    RelationshipType = "COUNTERPARTY"
)

// Relationship links a master entity to another, optionally with an ownership %
type Relationship struct {
	RelatedEntityID    uuid.UUID        `json:"related_entity_id"`
	Type               RelationshipType `json:"type"`
	OwnershipPercent   *float64         `json:"ownership_percent,omitempty"`
}

// MergeHistoryEntry is an immutable record of one entity being merged into another
type MergeHistoryEntry struct {
	MergedEntityID uuid.UUID `json:"merged_entity_id"`
	MergedAt       time.Time `json:"merged_at"`
	MergedBy       uuid.UUID `json:"merged_by"`
	Confidence     float64   `json:"confidence"`
	RuleCode       string    `json:"rule_code"`
}

// MasterEntity is the resolved, deduplicated golden record for a real-world party
type MasterEntity struct {
	EntityID          uuid.UUID           `json:"entity_id" db:"entity_id"`
	Kind              EntityKind          `json:"kind" db:"kind"`
	PrimaryName       string              `json:"primary_name" db:"primary_name"`
	NameVariants      []NameVariant       `json:"name_variants" db:"-"`
	Identifiers       []Identifier        `json:"identifiers" db:"-"`
	Addresses         []Address           `json:"addresses" db:"-"`
	Relationships     []Relationship      `json:"relationships" db:"-"`
	DateOfBirth       *time.Time          `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Nationalities     []string            `json:"nationalities,omitempty" db:"nationalities"`
	SourceRecordIDs   []uuid.UUID         `json:"source_record_ids" db:"source_record_ids"`
	SourceSystems     []string            `json:"source_systems" db:"source_systems"`
	MergeHistory      []MergeHistoryEntry `json:"merge_history,omitempty" db:"-"`
	CompletenessScore float64             `json:"completeness_score" db:"completeness_score"`
	QualityScore      float64             `json:"quality_score" db:"quality_score"`
	SanctionsMatch    bool                `json:"sanctions_match" db:"sanctions_match"`
	LastResolvedAt    time.Time           `json:"last_resolved_at" db:"last_resolved_at"`
	CreatedAt         time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" db:"updated_at"`
}

// PrimaryNameVariant returns the single primary name variant, if any
func (m *MasterEntity) PrimaryNameVariant() (NameVariant, bool) {
	for _, nv := range m.NameVariants {
		if nv.IsPrimary {
			return nv, true
		}
	}
	return NameVariant{}, false
}

// Validate checks the invariants of §3: at most one primary name variant,
// unique identifiers, at least one source record, last_resolved_at <= updated_at.
func (m *MasterEntity) Validate() error {
	primaryCount := 0
	for _, nv := range m.NameVariants {
		if nv.IsPrimary {
			primaryCount++
		}
	}
	if primaryCount > 1 {
		return errs.Invalid("master entity has more than one primary name variant")
	}
	seen := make(map[string]struct{}, len(m.Identifiers))
	for _, id := range m.Identifiers {
		k := id.Key()
		if _, dup := seen[k]; dup {
			return errs.Invalid("duplicate identifier " + k)
		}
		seen[k] = struct{}{}
	}
	if len(m.SourceRecordIDs) == 0 {
		return errs.Invalid("master entity must reference at least one source record")
	}
	if m.LastResolvedAt.After(m.UpdatedAt) {
		return errs.Invalid("last_resolved_at must not be after updated_at")
	}
	return nil
}

// ResolutionStatus tracks a source record's journey toward a master entity
type ResolutionStatus string

const (
	ResolutionPending  ResolutionStatus = "PENDING"
	ResolutionAuto     ResolutionStatus = "AUTO"
	ResolutionManual   ResolutionStatus = "MANUAL"
	ResolutionRejected ResolutionStatus = "REJECTED"
	ResolutionSplit    ResolutionStatus = "SPLIT"
)

// SourceRecord is the raw tuple ingested from an upstream system
type SourceRecord struct {
	RecordID       uuid.UUID        `json:"record_id" db:"record_id"`
	SourceSystem   string           `json:"source_system" db:"source_system"`
	Kind           EntityKind       `json:"kind" db:"kind"`
	Names          []NameVariant    `json:"names" db:"-"`
	Identifiers    []Identifier     `json:"identifiers" db:"-"`
	Addresses      []Address        `json:"addresses" db:"-"`
	DateOfBirth    *time.Time       `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Nationalities  []string         `json:"nationalities,omitempty" db:"nationalities"`
	Status         ResolutionStatus `json:"status" db:"status"`
	MasterEntityID *uuid.UUID       `json:"master_entity_id,omitempty" db:"master_entity_id"`
	ResolvedAt     *time.Time       `json:"resolved_at,omitempty" db:"resolved_at"`
	IngestedAt     time.Time        `json:"ingested_at" db:"ingested_at"`
}

// PrimaryName returns the record's best display name
func (s *SourceRecord) PrimaryName() string {
	for _, n := range s.Names {
		if n.IsPrimary {
			return n.Name
		}
	}
	if len(s.Names) > 0 {
		return s.Names[0].Name
	}
	return ""
}

// MatchConfidence labels a pairwise comparison score per spec.md §4.3
type MatchConfidence string

const (
	MatchDefinite MatchConfidence = "DEFINITE" // >=0.95
	MatchProbable MatchConfidence = "PROBABLE" // >=0.80
	MatchPossible MatchConfidence = "POSSIBLE" // >=0.60
	MatchUnlikely MatchConfidence = "UNLIKELY"
)

// ConfidenceLabel maps an overall score to its label per §4.3
func ConfidenceLabel(score float64) MatchConfidence {
	switch {
	case score >= 0.95:
		return MatchDefinite
	case score >= 0.80:
		return MatchProbable
	case score >= 0.60:
		return MatchPossible
	default:
		return MatchUnlikely
	}
}

// MatchCandidateStatus is the review status of a MatchCandidate
type MatchCandidateStatus string

const (
	CandidatePending  MatchCandidateStatus = "PENDING"
	CandidateAccepted MatchCandidateStatus = "ACCEPTED"
	CandidateRejected MatchCandidateStatus = "REJECTED"
)

// MatchCandidate is a pairwise comparison result awaiting human review
type MatchCandidate struct {
	CandidateID      uuid.UUID             `json:"candidate_id" db:"candidate_id"`
	SourceRecordID    uuid.UUID            `json:"source_record_id" db:"source_record_id"`
	MasterEntityID    uuid.UUID            `json:"master_entity_id" db:"master_entity_id"`
	Overall           float64              `json:"overall" db:"overall"`
	Confidence        MatchConfidence      `json:"confidence" db:"confidence"`
	RuleCode          string               `json:"rule_code" db:"rule_code"`
	FieldScores       map[string]float64   `json:"field_scores" db:"-"`
	Status            MatchCandidateStatus `json:"status" db:"status"`
	CreatedAt         time.Time            `json:"created_at" db:"created_at"`
	ReviewedAt        *time.Time           `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy        *uuid.UUID           `json:"reviewed_by,omitempty" db:"reviewed_by"`
}

// ResolutionRule is a declarative blocking/compare/auto-merge rule (§4.3)
type ResolutionRule struct {
	RuleCode          string             `json:"rule_code"`
	RuleName          string             `json:"rule_name"`
	EntityKind        EntityKind         `json:"entity_kind"`
	FieldWeights      map[string]float64 `json:"field_weights"`
	Threshold         float64            `json:"threshold"`
	AutoMergeThreshold float64           `json:"auto_merge_threshold"`
	AutoMergeEnabled  bool               `json:"auto_merge_enabled"`
	Priority          int                `json:"priority"`
	Active            bool               `json:"active"`
}

func normalizeFold(s string) string {
	// case-insensitive comparison key; ASCII-sufficient for identifiers/values
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
