package rules

import (
	"github.com/banking/aml-core/internal/domain"
	"github.com/google/uuid"
)

// evaluateStructuring implements the structuring trigger: 0.8*T <= amount <
// T AND recent_below_threshold_count >= N-1 within the sliding 1-day
// window (T default 10000, N default 3).
func evaluateStructuring(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (*domain.DetectedPattern, bool) {
	threshold := paramOr(rule, "threshold", 10000)
	n := paramOr(rule, "min_count", 3)

	amount := float64(tx.Amount.Amount)
	if !(amount >= 0.8*threshold && amount < threshold) {
		return nil, false
	}
	if float64(ctx.RecentBelowThresholdCount) < n-1 {
		return nil, false
	}

	confidence := 0.7
	indicators := []string{"multiple_below_threshold"}
	if float64(ctx.RecentTransactionTotal) > 1.5*threshold {
		confidence += 0.1
		indicators = append(indicators, "total_exceeds_threshold")
	}

	p := newPattern(domain.PatternStructuring, rule.BaseSeverity, tx.CustomerID, []uuid.UUID{tx.TransactionID}, confidence, rule, indicators, nil)
	return p, true
}

// evaluateVelocitySpike implements: current_velocity > baseline_velocity *
// M AND baseline > 0 (M default 3.0).
func evaluateVelocitySpike(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (*domain.DetectedPattern, bool) {
	m := paramOr(rule, "multiplier", 3.0)
	if ctx.BaselineVelocity <= 0 {
		return nil, false
	}
	if ctx.CurrentVelocity <= ctx.BaselineVelocity*m {
		return nil, false
	}
	confidence := 0.6 + minFloat(0.3, (ctx.CurrentVelocity/ctx.BaselineVelocity-m)*0.1)
	p := newPattern(domain.PatternVelocitySpike, rule.BaseSeverity, tx.CustomerID, []uuid.UUID{tx.TransactionID}, confidence, rule, []string{"velocity_spike"}, nil)
	return p, true
}

// evaluateRapidMovement implements: debit within H hours of a credit to
// the same account, debit_amount / credit_amount >= R, both >= min_amount
// (H default 24h, R default 0.9).
func evaluateRapidMovement(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (*domain.DetectedPattern, bool) {
	if tx.Direction != domain.DirectionDebit {
		return nil, false
	}
	if ctx.LastCreditAt == nil || ctx.LastCreditAmount == 0 {
		return nil, false
	}
	minAmount := paramOr(rule, "min_amount", 1000)
	ratioThreshold := paramOr(rule, "ratio", 0.9)
	hoursWindow := paramOr(rule, "hours", 24)

	elapsed := tx.Timestamp.Sub(*ctx.LastCreditAt).Hours()
	if elapsed < 0 || elapsed > hoursWindow {
		return nil, false
	}
	if float64(tx.Amount.Amount) < minAmount || float64(ctx.LastCreditAmount) < minAmount {
		return nil, false
	}
	ratio := float64(tx.Amount.Amount) / float64(ctx.LastCreditAmount)
	if ratio < ratioThreshold {
		return nil, false
	}
	confidence := 0.7 + 0.3*minFloat(1.0, ratio)
	p := newPattern(domain.PatternRapidMovement, rule.BaseSeverity, tx.CustomerID, []uuid.UUID{tx.TransactionID}, confidence, rule, []string{"rapid_movement"}, nil)
	return p, true
}

// evaluateGeographic implements: counterparty country in the configured
// high-risk set.
func evaluateGeographic(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (*domain.DetectedPattern, bool) {
	if !ctx.HighRiskCountries[tx.CountryCode] {
		return nil, false
	}
	p := newPattern(domain.PatternGeographic, rule.BaseSeverity, tx.CustomerID, []uuid.UUID{tx.TransactionID}, 0.75, rule, []string{"high_risk_country"}, map[string]any{"country_code": tx.CountryCode})
	return p, true
}

// evaluateDormantActivation implements: days_since_last_activity > D AND
// amount >= min_amount (D default 180).
func evaluateDormantActivation(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (*domain.DetectedPattern, bool) {
	minAmount := paramOr(rule, "min_amount", 5000)
	dormantDays := paramOr(rule, "dormant_days", 180)
	if ctx.LastActivityAt == nil {
		return nil, false
	}
	if float64(tx.Amount.Amount) < minAmount {
		return nil, false
	}
	days := tx.Timestamp.Sub(*ctx.LastActivityAt).Hours() / 24
	if days <= dormantDays {
		return nil, false
	}
	p := newPattern(domain.PatternDormantActivate, rule.BaseSeverity, tx.CustomerID, []uuid.UUID{tx.TransactionID}, 0.65, rule, []string{"dormant_reactivation"}, nil)
	return p, true
}

// evaluateAmountAnomaly implements: amount >= threshold (default 10000).
func evaluateAmountAnomaly(tx domain.Transaction, ctx domain.CustomerContext, rule domain.Rule) (*domain.DetectedPattern, bool) {
	threshold := paramOr(rule, "threshold", 10000)
	if float64(tx.Amount.Amount) < threshold {
		return nil, false
	}
	p := newPattern(domain.PatternAmountAnomaly, rule.BaseSeverity, tx.CustomerID, []uuid.UUID{tx.TransactionID}, 0.6, rule, []string{"large_amount"}, nil)
	return p, true
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
