package rules

import (
	"testing"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func baseRule(pt domain.PatternType) domain.Rule {
	return domain.Rule{
		RuleID:       "r1",
		Code:         "STRUCT_001",
		PatternType:  pt,
		BaseSeverity: domain.SeverityHigh,
		Active:       true,
		Version:      1,
	}
}

func TestStructuringFiveDepositsScenario(t *testing.T) {
	engine := NewEngine(nil)
	tx := domain.Transaction{
		TransactionID: uuid.New(),
		CustomerID:    uuid.New(),
		Amount:        domain.Money{Amount: 950000, Currency: "USD"}, // $9,500
		IsCash:        true,
		Timestamp:     time.Now(),
	}
	ctx := domain.CustomerContext{
		RecentBelowThresholdCount: 4,
		RecentTransactionTotal:    950000 * 5,
	}
	rule := baseRule(domain.PatternStructuring)
	rule.Parameters = map[string]float64{"threshold": 1000000}

	patterns := engine.Evaluate(tx, ctx, []domain.Rule{rule})
	if assert.Len(t, patterns, 1) {
		assert.GreaterOrEqual(t, patterns[0].Confidence, 0.7)
		assert.Contains(t, patterns[0].Indicators, "multiple_below_threshold")
	}
}

func TestVelocitySpikeRequiresPositiveBaseline(t *testing.T) {
	engine := NewEngine(nil)
	tx := domain.Transaction{TransactionID: uuid.New(), CustomerID: uuid.New()}
	ctx := domain.CustomerContext{CurrentVelocity: 10, BaselineVelocity: 0}
	rule := baseRule(domain.PatternVelocitySpike)

	patterns := engine.Evaluate(tx, ctx, []domain.Rule{rule})
	assert.Empty(t, patterns)
}

func TestAmountAnomalyTriggersAtThreshold(t *testing.T) {
	engine := NewEngine(nil)
	tx := domain.Transaction{TransactionID: uuid.New(), CustomerID: uuid.New(), Amount: domain.Money{Amount: 1500000}}
	rule := baseRule(domain.PatternAmountAnomaly)
	rule.Parameters = map[string]float64{"threshold": 1000000}

	patterns := engine.Evaluate(tx, domain.CustomerContext{}, []domain.Rule{rule})
	assert.Len(t, patterns, 1)
}

func TestRulePanicIsContainedPerRule(t *testing.T) {
	engine := NewEngine(nil)
	engine.evaluators[domain.PatternType("UNKNOWN")] = func(domain.Transaction, domain.CustomerContext, domain.Rule) (*domain.DetectedPattern, bool) {
		panic("evaluator failure")
	}
	badRule := baseRule(domain.PatternType("UNKNOWN"))
	goodRule := baseRule(domain.PatternAmountAnomaly)
	goodRule.Parameters = map[string]float64{"threshold": 100}

	tx := domain.Transaction{TransactionID: uuid.New(), CustomerID: uuid.New(), Amount: domain.Money{Amount: 1000}}
	patterns := engine.Evaluate(tx, domain.CustomerContext{}, []domain.Rule{badRule, goodRule})
	assert.Len(t, patterns, 1)
}
