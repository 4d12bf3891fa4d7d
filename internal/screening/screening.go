// Package screening implements the sanctions/PEP/watchlist screening
// engine (spec.md §4.2): a pure scoring function plus the bounded-worker
// batch wrapper around it.
package screening

import (
	"context"
	"sort"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/jobs"
	"github.com/banking/aml-core/internal/matching"
	"github.com/banking/aml-core/internal/refdata"
	"github.com/google/uuid"
)

// Subject is the screening request's target: a name plus the auxiliary
// fields scored against watchlist entries.
type Subject struct {
	EntityID     uuid.UUID
	PrimaryName  string
	AliasNames   []string
	Identifiers  []domain.Identifier
	DOB          *time.Time
	Nationalities []string
}

// Request is one screen_entity call (§6).
type Request struct {
	Subject   Subject
	Lists     []domain.WatchlistType
	Threshold float64 // default 0.8
}

const defaultThreshold = 0.8
const rejectBelow = 0.5

// Screen evaluates a subject against the requested watchlists from the
// given snapshot and returns every candidate scoring >= request.Threshold,
// sorted descending by score with ties broken by watchlist entry ID
// ascending (§5 ordering guarantees).
func Screen(req Request, snap *refdata.Snapshot) domain.ScreeningResult {
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = defaultThreshold
	}

	names := append([]string{req.Subject.PrimaryName}, req.Subject.AliasNames...)

	var hits []domain.ScreeningHit
	for _, list := range req.Lists {
		for _, entry := range snap.ActiveWatchlistEntries(list) {
			entryNames := append([]string{entry.Name}, entry.AltNames...)

			nameScore := 0.0
			for _, n := range names {
				for _, en := range entryNames {
					if s := matching.NameSimilarity(n, en); s > nameScore {
						nameScore = s
					}
				}
			}

			identifierScore := 0.0
			for _, id := range req.Subject.Identifiers {
				for _, eid := range entry.Identifiers {
					if matching.IdentifierMatch(id, eid) {
						identifierScore = 1.0
					}
				}
			}

			overall := 0.6*nameScore + 0.3*identifierScore
			if req.Subject.DOB != nil && entry.DOB != nil && sameDay(*req.Subject.DOB, *entry.DOB) {
				overall += 0.05
			}
			if nationalityOverlap(req.Subject.Nationalities, entry.Country) {
				overall += 0.05
			}
			if overall > 1.0 {
				overall = 1.0
			}
			if overall < rejectBelow {
				continue
			}
			if overall < threshold {
				continue
			}

			hits = append(hits, domain.ScreeningHit{
				HitID:            uuid.New(),
				Watchlist:        list,
				WatchlistEntryID: entry.EntryID,
				MatchedName:      entry.Name,
				MatchType:        matchType(nameScore),
				Score:            overall,
				Status:           domain.HitPendingReview,
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].WatchlistEntryID < hits[j].WatchlistEntryID
	})

	return domain.ScreeningResult{
		ScreeningID: uuid.New(),
		EntityID:    req.Subject.EntityID,
		Hits:        hits,
		ListVersion: snap.Version,
		ScreenedAt:  time.Now(),
	}
}

func matchType(nameScore float64) domain.MatchType {
	switch {
	case nameScore >= 0.95:
		return domain.MatchExact
	case nameScore >= 0.7:
		return domain.MatchFuzzy
	default:
		return domain.MatchPartial
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func nationalityOverlap(subjectNats []string, entryCountry string) bool {
	if entryCountry == "" {
		return false
	}
	for _, n := range subjectNats {
		if n == entryCountry {
			return true
		}
	}
	return false
}

// BatchResult pairs a subject with its screening outcome for batch runs.
type BatchResult struct {
	EntityID uuid.UUID
	Result   domain.ScreeningResult
}

// BatchScreen screens N subjects with bounded worker concurrency (§4.2,
// §5), recording each result and updating the job's progress counters.
func BatchScreen(ctx context.Context, pool *jobs.Pool, job *jobs.Job, subjects []Subject, lists []domain.WatchlistType, snap *refdata.Snapshot) []BatchResult {
	results := make([]BatchResult, len(subjects))
	tasks := make([]jobs.Task, len(subjects))
	for i, subj := range subjects {
		i, subj := i, subj
		tasks[i] = func(ctx context.Context) (bool, error) {
			res := Screen(Request{Subject: subj, Lists: lists}, snap)
			results[i] = BatchResult{EntityID: subj.EntityID, Result: res}
			return len(res.Hits) > 0, nil
		}
	}
	pool.Run(ctx, job, tasks)
	return results
}
