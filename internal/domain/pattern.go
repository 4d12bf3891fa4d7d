package domain

import (
	"time"

	"github.com/google/uuid"
)

// PatternStatus is the investigation lifecycle of a DetectedPattern
type PatternStatus string

const (
	PatternDetected     PatternStatus = "DETECTED"
	PatternUnderReview  PatternStatus = "UNDER_REVIEW"
	PatternConfirmed    PatternStatus = "CONFIRMED"
	PatternDismissed    PatternStatus = "DISMISSED"
	PatternEscalated    PatternStatus = "ESCALATED"
)

// DetectedPattern is produced by the rule engine or the batch pattern
// detectors (§3, §4.4, §4.5).
type DetectedPattern struct {
	PatternID        uuid.UUID         `json:"pattern_id" db:"pattern_id"`
	PatternType      PatternType       `json:"pattern_type" db:"pattern_type"`
	Severity         Severity          `json:"severity" db:"severity"`
	Status           PatternStatus     `json:"status" db:"status"`
	PrimaryEntityID  uuid.UUID         `json:"primary_entity_id" db:"primary_entity_id"`
	TransactionIDs   []uuid.UUID       `json:"transaction_ids" db:"transaction_ids"`
	Confidence       float64           `json:"confidence" db:"confidence"` // [0,1]
	Rule             RuleVersionRef    `json:"rule" db:"-"`
	Details          map[string]any    `json:"details,omitempty" db:"-"`
	Indicators       []string          `json:"indicators,omitempty" db:"indicators"`
	DetectionDate    time.Time         `json:"detection_date" db:"detection_date"`
}
