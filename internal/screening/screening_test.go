package screening

import (
	"testing"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/refdata"
	"github.com/stretchr/testify/assert"
)

func snapshotWithEntry(entry domain.WatchlistEntry) *refdata.Snapshot {
	return &refdata.Snapshot{
		Version: "v1",
		Watchlists: map[domain.WatchlistType][]domain.WatchlistEntry{
			domain.WatchlistOFACSDN: {entry},
		},
	}
}

func TestScreenExactNameAndDOBYieldsOverallOne(t *testing.T) {
	dob := time.Date(1975, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := snapshotWithEntry(domain.WatchlistEntry{
		EntryID:  "SDN-1",
		Name:     "John Smith Doe",
		AltNames: []string{"J. Smith"},
		DOB:      &dob,
	})

	req := Request{
		Subject: Subject{
			PrimaryName: "John Smith Doe",
			DOB:         &dob,
		},
		Lists: []domain.WatchlistType{domain.WatchlistOFACSDN},
	}

	result := Screen(req, snap)
	assert.Len(t, result.Hits, 1)
	assert.InDelta(t, 1.0, result.Hits[0].Score, 0.001)
	assert.Equal(t, domain.MatchExact, result.Hits[0].MatchType)
	assert.Equal(t, domain.HitPendingReview, result.Hits[0].Status)
}

func TestScreenBelowThresholdExcluded(t *testing.T) {
	snap := snapshotWithEntry(domain.WatchlistEntry{EntryID: "SDN-2", Name: "Zbigniew Kowalczyk"})
	req := Request{
		Subject: Subject{PrimaryName: "John Smith"},
		Lists:   []domain.WatchlistType{domain.WatchlistOFACSDN},
	}
	result := Screen(req, snap)
	assert.Empty(t, result.Hits)
}

func TestScreenSortedDescendingByScore(t *testing.T) {
	snap := &refdata.Snapshot{
		Version: "v1",
		Watchlists: map[domain.WatchlistType][]domain.WatchlistEntry{
			domain.WatchlistOFACSDN: {
				{EntryID: "B", Name: "Maria Garcia"},
				{EntryID: "A", Name: "Maria Garcia Lopez"},
			},
		},
	}
	req := Request{
		Subject: Subject{PrimaryName: "Maria Garcia Lopez"},
		Lists:   []domain.WatchlistType{domain.WatchlistOFACSDN},
	}
	result := Screen(req, snap)
	if assert.Len(t, result.Hits, 2) {
		assert.GreaterOrEqual(t, result.Hits[0].Score, result.Hits[1].Score)
	}
}
