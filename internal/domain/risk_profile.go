package domain

import (
	"time"

	"github.com/google/uuid"
)

// RiskCategory is one weighted dimension of the composite risk score (§4.6)
type RiskCategory string

const (
	RiskCategoryGeography    RiskCategory = "GEOGRAPHY"
	RiskCategoryProduct      RiskCategory = "PRODUCT"
	RiskCategoryChannel      RiskCategory = "CHANNEL"
	RiskCategoryCustomer     RiskCategory = "CUSTOMER"
	RiskCategoryTransaction  RiskCategory = "TRANSACTION"
	RiskCategoryIndustry     RiskCategory = "INDUSTRY"
)

// DefaultCategoryWeights are the fixed weights of §4.6, which must sum to
// 1.0; risk.Score rejects a weight set that does not.
func DefaultCategoryWeights() map[RiskCategory]float64 {
	return map[RiskCategory]float64{
		RiskCategoryGeography:   0.25,
		RiskCategoryProduct:     0.15,
		RiskCategoryChannel:     0.10,
		RiskCategoryCustomer:    0.20,
		RiskCategoryTransaction: 0.20,
		RiskCategoryIndustry:    0.10,
	}
}

// RiskLevel is the banded classification of a composite score. Prohibited
// is assigned administratively; RiskLevelForScore never returns it (§4.6).
type RiskLevel string

const (
	RiskLevelLow        RiskLevel = "LOW"
	RiskLevelMedium     RiskLevel = "MEDIUM"
	RiskLevelHigh       RiskLevel = "HIGH"
	RiskLevelVeryHigh   RiskLevel = "VERY_HIGH"
	RiskLevelProhibited RiskLevel = "PROHIBITED"
)

var riskLevelOrder = map[RiskLevel]int{
	RiskLevelLow:        0,
	RiskLevelMedium:     1,
	RiskLevelHigh:       2,
	RiskLevelVeryHigh:   3,
	RiskLevelProhibited: 4,
}

// RiskLevelForScore bands a composite score in [0,100] (§4.6 thresholds)
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskLevelVeryHigh
	case score >= 60:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// LevelsApart returns how many bands separate two risk levels, used to
// auto-raise requires_edd when an override moves the level upward by >=2
// (§4.6).
func LevelsApart(from, to RiskLevel) int {
	return riskLevelOrder[to] - riskLevelOrder[from]
}

// CategoryScore is one weighted component of a CustomerRiskProfile
type CategoryScore struct {
	Category RiskCategory `json:"category"`
	Score    float64      `json:"score"`  // [0,100] raw
	Weight   float64      `json:"weight"` // (0,1], all weights for a profile sum to 1.0
}

// OverrideRequest records a manual adjustment to a customer's risk level,
// gated behind the shared ApprovalSet workflow (§4.6).
type OverrideRequest struct {
	OverrideID    uuid.UUID    `json:"override_id"`
	RequestedBy   uuid.UUID    `json:"requested_by"`
	CurrentLevel  RiskLevel    `json:"current_level"`
	RequestedLevel RiskLevel   `json:"requested_level"`
	Reason        string       `json:"reason"`
	Justification string       `json:"justification"`
	Approvals     *ApprovalSet `json:"approvals"`
	AppliedAt     *time.Time   `json:"applied_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CustomerRiskProfile is the persisted composite risk assessment for a
// customer (§3, §4.6)
type CustomerRiskProfile struct {
	ProfileID      uuid.UUID         `json:"profile_id" db:"profile_id"`
	CustomerID     uuid.UUID         `json:"customer_id" db:"customer_id"`
	CategoryScores []CategoryScore   `json:"category_scores" db:"-"`
	CompositeScore float64           `json:"composite_score" db:"composite_score"`
	Level          RiskLevel         `json:"level" db:"level"`
	RequiresEDD    bool              `json:"requires_edd" db:"requires_edd"`
	Overrides      []OverrideRequest `json:"overrides,omitempty" db:"-"`
	LastScoredAt   time.Time         `json:"last_scored_at" db:"last_scored_at"`
	NextReviewDue  time.Time         `json:"next_review_due" db:"next_review_due"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// ReviewIntervalForLevel returns the periodic-review cadence for a risk
// level (§4.6 supplement from original_source: higher risk reviews more
// often).
func ReviewIntervalForLevel(l RiskLevel) time.Duration {
	switch l {
	case RiskLevelVeryHigh:
		return 30 * 24 * time.Hour
	case RiskLevelHigh:
		return 90 * 24 * time.Hour
	case RiskLevelMedium:
		return 180 * 24 * time.Hour
	default:
		return 365 * 24 * time.Hour
	}
}

// EffectiveLevel returns the profile's risk level, substituting the last
// applied override's requested level when present.
func (p *CustomerRiskProfile) EffectiveLevel() RiskLevel {
	for i := len(p.Overrides) - 1; i >= 0; i-- {
		if p.Overrides[i].AppliedAt != nil {
			return p.Overrides[i].RequestedLevel
		}
	}
	return p.Level
}
