package patterns

import (
	"testing"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func txn(source, target uuid.UUID, amountCents int64, ts time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:   uuid.New(),
		SourceAccountID: source,
		TargetAccountID: target,
		Amount:          domain.Money{Amount: amountCents, Currency: "USD"},
		IsCash:          true,
		Timestamp:       ts,
	}
}

func TestDetectStructuringBatchFiveDeposits(t *testing.T) {
	customerID := uuid.New()
	now := time.Now()
	var txs []domain.Transaction
	for i := 0; i < 5; i++ {
		txs = append(txs, txn(uuid.New(), uuid.New(), 950000, now))
	}
	pattern := DetectStructuringBatch(customerID, txs, 1000000, 3)
	if assert.NotNil(t, pattern) {
		assert.GreaterOrEqual(t, pattern.Confidence, 0.85)
		assert.Contains(t, pattern.Indicators, "similar_amounts")
	}
}

func TestDetectLayeringThreeHopChain(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	txs := []domain.Transaction{
		txn(a, b, 1000000, now),
		txn(b, c, 990000, now.Add(time.Hour)),
		txn(c, d, 980000, now.Add(2*time.Hour)),
	}
	patterns := DetectLayering(txs)
	found := false
	for _, p := range patterns {
		if p.PrimaryEntityID == a && len(p.TransactionIDs) == 3 {
			found = true
			assert.InDelta(t, 0.6, p.Confidence, 0.001)
		}
	}
	assert.True(t, found, "expected a 3-hop layering pattern starting at A")
}

func TestDetectRoundTripping(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	now := time.Now()
	txs := []domain.Transaction{
		txn(a, b, 500000, now),
		txn(b, a, 480000, now.Add(48*time.Hour)),
	}
	patterns := DetectRoundTripping(txs)
	if assert.Len(t, patterns, 1) {
		assert.Equal(t, domain.PatternRoundTripping, patterns[0].PatternType)
		assert.InDelta(t, 0.8, patterns[0].Confidence, 0.001)
	}
}

func TestDetectRoundTrippingBelowRatioExcluded(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	now := time.Now()
	txs := []domain.Transaction{
		txn(a, b, 500000, now),
		txn(b, a, 100000, now.Add(time.Hour)),
	}
	patterns := DetectRoundTripping(txs)
	assert.Empty(t, patterns)
}
