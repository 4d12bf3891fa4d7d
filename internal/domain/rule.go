package domain

import "time"

// PatternType enumerates the pattern kinds produced by the rule engine and
// batch detectors (§3, §4.4, §4.5). This extends the teacher's AMLFlagType
// vocabulary with the batch-only pattern kinds.
type PatternType string

const (
	PatternStructuring     PatternType = "STRUCTURING"
	PatternVelocitySpike   PatternType = "VELOCITY_SPIKE"
	PatternRapidMovement   PatternType = "RAPID_MOVEMENT"
	PatternGeographic      PatternType = "GEOGRAPHIC_ANOMALY"
	PatternDormantActivate PatternType = "DORMANT_ACTIVATION"
	PatternAmountAnomaly   PatternType = "AMOUNT_ANOMALY"
	PatternLayering        PatternType = "LAYERING"
	PatternRoundTripping   PatternType = "ROUND_TRIPPING"
)

// Rule is a configurable, versioned evaluator definition (§3).
type Rule struct {
	RuleID      string                 `json:"rule_id" db:"rule_id"`
	Code        string                 `json:"code" db:"code"`
	Name        string                 `json:"name" db:"name"`
	PatternType PatternType            `json:"pattern_type" db:"pattern_type"`
	Parameters  map[string]float64     `json:"parameters" db:"-"`
	Thresholds  map[string]float64     `json:"thresholds" db:"-"`
	// Condition is an optional expr-lang boolean expression evaluated over
	// the same fields as CustomerContext/Transaction; when empty the
	// canonical native evaluator for PatternType is authoritative.
	Condition   string    `json:"condition,omitempty" db:"condition"`
	BaseSeverity Severity `json:"base_severity" db:"base_severity"`
	EffectiveFrom time.Time `json:"effective_from" db:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty" db:"effective_to"`
	Active      bool      `json:"active" db:"active"`
	Version     int       `json:"version" db:"version"`
}

// Severity is the shared severity scale used by alerts and detected patterns
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// AlertSLA returns the SLA duration for an alert of the given severity (§3)
func AlertSLA(s Severity) time.Duration {
	switch s {
	case SeverityLow:
		return 30 * 24 * time.Hour
	case SeverityMedium:
		return 14 * 24 * time.Hour
	case SeverityHigh:
		return 7 * 24 * time.Hour
	case SeverityCritical:
		return 3 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// RuleVersionRef pins a detected pattern to the exact rule definition that
// produced it (§3 rule-version pinning invariant).
type RuleVersionRef struct {
	RuleID  string `json:"rule_id"`
	Version int    `json:"version"`
}
