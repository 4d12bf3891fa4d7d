package domain

import (
	"time"

	"github.com/google/uuid"
)

// CaseCategory classifies a case's subject matter
type CaseCategory string

const (
	CaseMoneyLaundering    CaseCategory = "MONEY_LAUNDERING"
	CaseTerroristFinancing CaseCategory = "TERRORIST_FINANCING"
	CaseFraud              CaseCategory = "FRAUD"
	CaseSanctionsViolation CaseCategory = "SANCTIONS_VIOLATION"
	CaseStructuring        CaseCategory = "STRUCTURING"
)

// CasePriority drives the case's SLA
type CasePriority string

const (
	CasePriorityLow    CasePriority = "LOW"
	CasePriorityMedium CasePriority = "MEDIUM"
	CasePriorityHigh   CasePriority = "HIGH"
	CasePriorityUrgent CasePriority = "URGENT"
)

// CaseSLA returns the SLA duration for a case of the given priority (§3)
func CaseSLA(p CasePriority) time.Duration {
	switch p {
	case CasePriorityLow:
		return 90 * 24 * time.Hour
	case CasePriorityMedium:
		return 60 * 24 * time.Hour
	case CasePriorityHigh:
		return 30 * 24 * time.Hour
	case CasePriorityUrgent:
		return 14 * 24 * time.Hour
	default:
		return 90 * 24 * time.Hour
	}
}

// CaseStatus is the state machine of §4.7
type CaseStatus string

const (
	CaseDraft            CaseStatus = "DRAFT"
	CaseOpen             CaseStatus = "OPEN"
	CaseInProgress       CaseStatus = "IN_PROGRESS"
	CasePendingReview    CaseStatus = "PENDING_REVIEW"
	CaseEscalated        CaseStatus = "ESCALATED"
	CasePendingSAR       CaseStatus = "PENDING_SAR"
	CaseSARFiled         CaseStatus = "SAR_FILED"
	CaseClosedNoAction   CaseStatus = "CLOSED_NO_ACTION"
	CaseClosedWithAction CaseStatus = "CLOSED_WITH_ACTION"
)

var caseOpenStatuses = map[CaseStatus]bool{
	CaseOpen: true, CaseInProgress: true, CasePendingReview: true, CaseEscalated: true,
}

var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseDraft:         {CaseOpen},
	CaseOpen:          {CaseInProgress, CaseClosedNoAction, CaseClosedWithAction},
	CaseInProgress:    {CasePendingReview, CaseEscalated, CasePendingSAR, CaseClosedNoAction, CaseClosedWithAction},
	CasePendingReview: {CaseClosedNoAction, CaseClosedWithAction},
	CaseEscalated:     {CaseClosedNoAction, CaseClosedWithAction},
	CasePendingSAR:    {CaseSARFiled},
	CaseSARFiled:      {CaseClosedNoAction, CaseClosedWithAction},
}

// CanTransitionCase reports whether moving from 'from' to 'to' is legal.
func CanTransitionCase(from, to CaseStatus) bool {
	if caseOpenStatuses[from] && (to == CaseClosedNoAction || to == CaseClosedWithAction) {
		return true
	}
	for _, candidate := range caseTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// IsClosedCaseStatus reports whether a status is a terminal closed state
func IsClosedCaseStatus(s CaseStatus) bool {
	return s == CaseClosedNoAction || s == CaseClosedWithAction
}

// TimelineEntry is one append-only case-timeline entry, auto-generated for
// creation, status change, assignment, finding/document/related-entity add,
// escalation, and close (§4.7).
type TimelineEntry struct {
	EntryID   uuid.UUID `json:"entry_id"`
	Kind      string    `json:"kind"`
	Summary   string    `json:"summary"`
	ActorID   uuid.UUID `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Finding is an investigator's recorded conclusion on a case
type Finding struct {
	FindingID uuid.UUID `json:"finding_id"`
	Summary   string    `json:"summary"`
	AddedBy   uuid.UUID `json:"added_by"`
	AddedAt   time.Time `json:"added_at"`
}

// Document is a path reference to a case document (never the bytes, per §6)
type Document struct {
	DocumentID uuid.UUID `json:"document_id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	AddedBy    uuid.UUID `json:"added_by"`
	AddedAt    time.Time `json:"added_at"`
}

// RelatedEntity links a case to an entity outside the alert/customer pair
type RelatedEntity struct {
	EntityID uuid.UUID `json:"entity_id"`
	Role     string    `json:"role"`
	AddedAt  time.Time `json:"added_at"`
}

// Case aggregates one or more alerts (§3)
type Case struct {
	CaseID         uuid.UUID       `json:"case_id" db:"case_id"`
	Number         string          `json:"number" db:"number"` // CASE-YYYYMMDD-NNNNNN
	Category       CaseCategory    `json:"category" db:"category"`
	Priority       CasePriority    `json:"priority" db:"priority"`
	Status         CaseStatus      `json:"status" db:"status"`
	DueDate        time.Time       `json:"due_date" db:"due_date"`
	Timeline       []TimelineEntry `json:"timeline,omitempty" db:"-"`
	Findings       []Finding       `json:"findings,omitempty" db:"-"`
	Documents      []Document      `json:"documents,omitempty" db:"-"`
	RelatedEntities []RelatedEntity `json:"related_entities,omitempty" db:"-"`
	AlertIDs       []uuid.UUID     `json:"alert_ids" db:"alert_ids"`
	SARIDs         []uuid.UUID     `json:"sar_ids,omitempty" db:"sar_ids"`
	AssignedTo     *uuid.UUID      `json:"assigned_to,omitempty" db:"assigned_to"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty" db:"closed_at"`
	ResolutionType *string         `json:"resolution_type,omitempty" db:"resolution_type"`
	Summary        *string         `json:"summary,omitempty" db:"summary"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// RecomputeDueDate recomputes DueDate from Priority and CreatedAt
func (c *Case) RecomputeDueDate() {
	c.DueDate = c.CreatedAt.Add(CaseSLA(c.Priority))
}

// CaseFilter is the search criteria for search_cases (§6)
type CaseFilter struct {
	Status     *CaseStatus
	Category   *CaseCategory
	Priority   *CasePriority
	AssignedTo *uuid.UUID
	Limit      int
	Offset     int
}

// CaseStatistics is the result of get_case_statistics (§6)
type CaseStatistics struct {
	TotalOpen    int                    `json:"total_open"`
	TotalClosed  int                    `json:"total_closed"`
	ByCategory   map[CaseCategory]int   `json:"by_category"`
	ByPriority   map[CasePriority]int   `json:"by_priority"`
	OverdueCount int                    `json:"overdue_count"`
}
