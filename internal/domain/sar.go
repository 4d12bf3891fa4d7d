package domain

import (
	"time"

	"github.com/google/uuid"
)

// SARType classifies the filing
type SARType string

const (
	SARSuspiciousActivity SARType = "SUSPICIOUS_ACTIVITY"
	SARStructuring        SARType = "STRUCTURING"
	SARTerroristFinancing SARType = "TERRORIST_FINANCING"
	SARFraud              SARType = "FRAUD"
)

// SARStatus is the state machine of §4.7
type SARStatus string

const (
	SARDraft          SARStatus = "DRAFT"
	SARPendingReview   SARStatus = "PENDING_REVIEW"
	SARPendingApproval SARStatus = "PENDING_APPROVAL"
	SARApproved        SARStatus = "APPROVED"
	SARSubmitted       SARStatus = "SUBMITTED"
	SARAccepted        SARStatus = "ACCEPTED"
	SARRejected        SARStatus = "REJECTED"
	SARAmended         SARStatus = "AMENDED"
)

var sarTransitions = map[SARStatus][]SARStatus{
	SARDraft:           {SARPendingReview},
	SARPendingReview:   {SARPendingApproval, SARDraft},
	SARPendingApproval: {SARApproved, SARPendingReview},
	SARApproved:        {SARSubmitted},
	SARSubmitted:       {SARAccepted, SARRejected},
	SARRejected:        {SARAmended},
	SARAmended:         {SARPendingReview},
}

// CanTransitionSAR reports whether moving from 'from' to 'to' is legal.
func CanTransitionSAR(from, to SARStatus) bool {
	for _, candidate := range sarTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}


// SARSubject is one natural or legal person named in the filing
type SARSubject struct {
	EntityID      uuid.UUID `json:"entity_id"`
	Role          string    `json:"role"` // SUBJECT, JOINT_HOLDER, BENEFICIARY
	Name          string    `json:"name"`
	SSNEncrypted  string    `json:"ssn_encrypted,omitempty"`
	DOBEncrypted  string    `json:"dob_encrypted,omitempty"`
	Relationship  string    `json:"relationship,omitempty"`
}

// SuspiciousActivityRecord is one line item of suspicious activity covered
// by the filing
type SuspiciousActivityRecord struct {
	ActivityType string      `json:"activity_type"`
	TotalAmount  Money       `json:"total_amount"`
	DateRange    [2]time.Time `json:"date_range"`
	TransactionIDs []uuid.UUID `json:"transaction_ids"`
}

// NarrativeSection is one versioned section of the narrative; SARs require
// WHO/WHAT/WHEN/WHERE/WHY/HOW sections (§4.7 supplement from original_source).
type NarrativeSection struct {
	Section   string    `json:"section"`
	Text      string    `json:"text"`
	Version   int       `json:"version"`
	UpdatedBy uuid.UUID `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Submission records one attempt to file the SAR with the regulator
type Submission struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	SubmittedBy  uuid.UUID `json:"submitted_by"`
	SubmittedAt  time.Time `json:"submitted_at"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	Outcome      string    `json:"outcome,omitempty"`
}

// SAR is a Suspicious Activity Report (§3)
type SAR struct {
	SARID             uuid.UUID                  `json:"sar_id" db:"sar_id"`
	Number            string                     `json:"number" db:"number"` // SAR-YYYYMMDD-NNNNNN
	Type              SARType                    `json:"type" db:"type"`
	Status            SARStatus                  `json:"status" db:"status"`
	CaseID            uuid.UUID                  `json:"case_id" db:"case_id"`
	Subjects          []SARSubject               `json:"subjects" db:"-"`
	Activity          []SuspiciousActivityRecord `json:"activity" db:"-"`
	Narrative         []NarrativeSection          `json:"narrative" db:"-"`
	Approvals         *ApprovalSet               `json:"approvals,omitempty" db:"-"`
	Submissions       []Submission               `json:"submissions,omitempty" db:"-"`
	TriggerDate       time.Time                  `json:"trigger_date" db:"trigger_date"`
	FilingDeadline    time.Time                  `json:"filing_deadline" db:"filing_deadline"`
	CreatedAt         time.Time                  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at" db:"updated_at"`
}

// RecomputeFilingDeadline sets FilingDeadline from TriggerDate, using the
// standard filing window from FilingDeadlines[ReportTypeSAR] (30 days),
// doubled when no subject has been identified yet (60 days).
func (s *SAR) RecomputeFilingDeadline() {
	window := FilingDeadlines[ReportTypeSAR]
	if len(s.Subjects) == 0 {
		s.FilingDeadline = s.TriggerDate.Add(2 * window)
		return
	}
	s.FilingDeadline = s.TriggerDate.Add(window)
}

// ApprovalRole enumerates the roles in a multi-role approval chain, shared
// between SAR filing and risk-score overrides (§4.6, §4.7).
type ApprovalRole string

const (
	ApprovalRoleAnalyst  ApprovalRole = "ANALYST"
	ApprovalRoleReviewer ApprovalRole = "REVIEWER"
	ApprovalRoleOfficer  ApprovalRole = "COMPLIANCE_OFFICER"
)

// ApprovalDecision is one recorded decision within an ApprovalSet
type ApprovalDecision struct {
	Role      ApprovalRole `json:"role"`
	ActorID   uuid.UUID    `json:"actor_id"`
	Approved  bool         `json:"approved"`
	Comment   string       `json:"comment,omitempty"`
	DecidedAt time.Time    `json:"decided_at"`
}

// ApprovalSet is a shared helper type for any workflow object requiring
// sequential sign-off by a fixed set of roles. Used by both SAR filing and
// risk-score override requests.
type ApprovalSet struct {
	Required  []ApprovalRole     `json:"required"`
	Decisions []ApprovalDecision `json:"decisions,omitempty"`
}

// IsComplete reports whether every required role has recorded an approval.
func (a *ApprovalSet) IsComplete() bool {
	got := make(map[ApprovalRole]bool, len(a.Decisions))
	for _, d := range a.Decisions {
		if d.Approved {
			got[d.Role] = true
		}
	}
	for _, r := range a.Required {
		if !got[r] {
			return false
		}
	}
	return true
}

// IsRejected reports whether any decision was a rejection.
func (a *ApprovalSet) IsRejected() bool {
	for _, d := range a.Decisions {
		if !d.Approved {
			return true
		}
	}
	return false
}
