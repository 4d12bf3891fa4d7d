package domain

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistType enumerates the reference lists screened against (§4.2)
type WatchlistType string

const (
	WatchlistOFACSDN  WatchlistType = "OFAC_SDN"
	WatchlistUNSC     WatchlistType = "UN_SECURITY_COUNCIL"
	WatchlistEU       WatchlistType = "EU_SANCTIONS"
	WatchlistPEP      WatchlistType = "PEP"
	WatchlistInternal WatchlistType = "INTERNAL"
)

// MatchType classifies how a screening hit was produced (§4.2)
type MatchType string

const (
	MatchExact   MatchType = "EXACT"
	MatchFuzzy   MatchType = "FUZZY"
	MatchPartial MatchType = "PARTIAL"
)

// ScreeningHitStatus is the disposition lifecycle of one hit
type ScreeningHitStatus string

const (
	HitPendingReview ScreeningHitStatus = "PENDING_REVIEW"
	HitConfirmed     ScreeningHitStatus = "CONFIRMED"
	HitFalsePositive ScreeningHitStatus = "FALSE_POSITIVE"
)

// ScreeningHit is one candidate match against a single watchlist entry
type ScreeningHit struct {
	HitID          uuid.UUID          `json:"hit_id" db:"hit_id"`
	Watchlist      WatchlistType      `json:"watchlist" db:"watchlist"`
	WatchlistEntryID string           `json:"watchlist_entry_id" db:"watchlist_entry_id"`
	MatchedName    string             `json:"matched_name" db:"matched_name"`
	MatchType      MatchType          `json:"match_type" db:"match_type"`
	Score          float64            `json:"score" db:"score"` // [0,1]
	Status         ScreeningHitStatus `json:"status" db:"status"`
	ReviewedBy     *uuid.UUID         `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time         `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewNote     string             `json:"review_note,omitempty" db:"review_note"`
}

// ScreeningResult is the outcome of one screen_entity / batch_screen call
// (§3, §4.2)
type ScreeningResult struct {
	ScreeningID uuid.UUID      `json:"screening_id" db:"screening_id"`
	EntityID    uuid.UUID      `json:"entity_id" db:"entity_id"`
	Hits        []ScreeningHit `json:"hits" db:"-"`
	ListVersion string         `json:"list_version" db:"list_version"`
	ScreenedAt  time.Time      `json:"screened_at" db:"screened_at"`
}

// HasUnresolvedHits reports whether any hit still awaits disposition
func (r *ScreeningResult) HasUnresolvedHits() bool {
	for _, h := range r.Hits {
		if h.Status == HitPendingReview {
			return true
		}
	}
	return false
}

// WatchlistEntry is one reference-data row consumed by the screening engine
type WatchlistEntry struct {
	EntryID     string        `json:"entry_id"`
	Watchlist   WatchlistType `json:"watchlist"`
	Name        string        `json:"name"`
	AltNames    []string      `json:"alt_names,omitempty"`
	Identifiers []Identifier  `json:"identifiers,omitempty"`
	DOB         *time.Time    `json:"dob,omitempty"`
	Country     string        `json:"country,omitempty"`
	Program     string        `json:"program,omitempty"`
}
