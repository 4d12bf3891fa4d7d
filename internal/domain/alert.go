package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus is the state machine of §4.7
type AlertStatus string

const (
	AlertNew                 AlertStatus = "NEW"
	AlertAssigned            AlertStatus = "ASSIGNED"
	AlertUnderReview         AlertStatus = "UNDER_REVIEW"
	AlertEscalated           AlertStatus = "ESCALATED"
	AlertClosedFalsePositive AlertStatus = "CLOSED_FALSE_POSITIVE"
	AlertClosedTruePositive  AlertStatus = "CLOSED_TRUE_POSITIVE"
	AlertSARFiled            AlertStatus = "SAR_FILED"
)

// alertTransitions is the directed state graph of §4.7. No back-edges except
// UNDER_REVIEW -> ASSIGNED via reassignment.
var alertTransitions = map[AlertStatus][]AlertStatus{
	AlertNew:         {AlertAssigned},
	AlertAssigned:    {AlertUnderReview},
	AlertUnderReview: {AlertAssigned, AlertEscalated, AlertClosedFalsePositive, AlertClosedTruePositive},
	AlertEscalated:   {AlertClosedFalsePositive, AlertClosedTruePositive},
	AlertClosedTruePositive: {AlertSARFiled},
}

// CanTransitionAlert reports whether moving from 'from' to 'to' is legal.
func CanTransitionAlert(from, to AlertStatus) bool {
	for _, candidate := range alertTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// IsClosedAlertStatus reports whether a status is a terminal closed state.
func IsClosedAlertStatus(s AlertStatus) bool {
	return s == AlertClosedFalsePositive || s == AlertClosedTruePositive
}

// AssignmentEntry is one append-only entry in an alert's assignment history
type AssignmentEntry struct {
	AssignedTo uuid.UUID `json:"assigned_to"`
	AssignedBy uuid.UUID `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
	Reason     string    `json:"reason,omitempty"`
}

// Comment is one append-only entry in an alert's comment log
type Comment struct {
	CommentID uuid.UUID `json:"comment_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Evidence is an append-only attachment reference (path only, per §6)
type Evidence struct {
	EvidenceID  uuid.UUID `json:"evidence_id"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
	AddedBy     uuid.UUID `json:"added_by"`
	AddedAt     time.Time `json:"added_at"`
}

// Alert materializes one or more DetectedPatterns into a workflow object (§3)
type Alert struct {
	AlertID        uuid.UUID         `json:"alert_id" db:"alert_id"`
	Number         string            `json:"number" db:"number"` // ALT-YYYYMMDD-NNNNNN
	Status         AlertStatus       `json:"status" db:"status"`
	Severity       Severity          `json:"severity" db:"severity"`
	CustomerID     uuid.UUID         `json:"customer_id" db:"customer_id"`
	AccountID      uuid.UUID         `json:"account_id" db:"account_id"`
	PatternIDs     []uuid.UUID       `json:"pattern_ids" db:"pattern_ids"`
	RiskScore      int               `json:"risk_score" db:"risk_score"` // [0,100]
	DueDate        time.Time         `json:"due_date" db:"due_date"`
	Assignments    []AssignmentEntry `json:"assignments,omitempty" db:"-"`
	Comments       []Comment         `json:"comments,omitempty" db:"-"`
	Evidence       []Evidence        `json:"evidence,omitempty" db:"-"`
	ParentCaseID   *uuid.UUID        `json:"parent_case_id,omitempty" db:"parent_case_id"`
	ClosedAt       *time.Time        `json:"closed_at,omitempty" db:"closed_at"`
	Resolution     *string           `json:"resolution,omitempty" db:"resolution"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// RecomputeDueDate recomputes DueDate from Severity and CreatedAt, per the
// §8 invariant "due_date = created_at + SLA(severity)".
func (a *Alert) RecomputeDueDate() {
	a.DueDate = a.CreatedAt.Add(AlertSLA(a.Severity))
}

// AlertFilter is the search criteria for search_alerts (§6)
type AlertFilter struct {
	Status     *AlertStatus
	Severity   *Severity
	CustomerID *uuid.UUID
	AssignedTo *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// AlertSummary is a lightweight projection for search_alerts pages (§6)
type AlertSummary struct {
	AlertID    uuid.UUID   `json:"alert_id"`
	Number     string      `json:"number"`
	Status     AlertStatus `json:"status"`
	Severity   Severity    `json:"severity"`
	CustomerID uuid.UUID   `json:"customer_id"`
	RiskScore  int         `json:"risk_score"`
	DueDate    time.Time   `json:"due_date"`
}

// AlertPage is a paginated result of search_alerts
type AlertPage struct {
	Items      []AlertSummary `json:"items"`
	TotalCount int            `json:"total_count"`
	HasMore    bool           `json:"has_more"`
}

// AlertStatistics is the result of get_statistics (§6)
type AlertStatistics struct {
	TotalOpen          int            `json:"total_open"`
	TotalClosed        int            `json:"total_closed"`
	BySeverity         map[Severity]int `json:"by_severity"`
	ByStatus           map[AlertStatus]int `json:"by_status"`
	OverdueCount       int            `json:"overdue_count"`
	AverageResolutionH float64        `json:"average_resolution_hours"`
}
