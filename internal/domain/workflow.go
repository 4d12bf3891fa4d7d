package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowTemplateKind names a predefined multi-step workflow (§4.8)
type WorkflowTemplateKind string

const (
	WorkflowAlertTriage       WorkflowTemplateKind = "ALERT_TRIAGE"
	WorkflowCaseInvestigation WorkflowTemplateKind = "CASE_INVESTIGATION"
	WorkflowSARFiling         WorkflowTemplateKind = "SAR_FILING"
	WorkflowPeriodicReview    WorkflowTemplateKind = "PERIODIC_REVIEW"
)

// StepStatus is the per-step lifecycle within a workflow instance
type StepStatus string

const (
	StepPending    StepStatus = "PENDING"
	StepInProgress StepStatus = "IN_PROGRESS"
	StepDone       StepStatus = "DONE"
	StepSkipped    StepStatus = "SKIPPED"
	StepFailed     StepStatus = "FAILED"
)

// StepDefinition is one templated step: a name, the role allowed to
// complete it, and whether completion requires an approval decision.
type StepDefinition struct {
	Name            string       `json:"name"`
	RequiredRole    ApprovalRole `json:"required_role"`
	RequiresApproval bool        `json:"requires_approval"`
}

// WorkflowTemplate is the static definition of a multi-step workflow
type WorkflowTemplate struct {
	Kind  WorkflowTemplateKind `json:"kind"`
	Steps []StepDefinition     `json:"steps"`
}

// DefaultTemplates returns the built-in workflow templates (§4.8)
func DefaultTemplates() map[WorkflowTemplateKind]WorkflowTemplate {
	return map[WorkflowTemplateKind]WorkflowTemplate{
		WorkflowAlertTriage: {
			Kind: WorkflowAlertTriage,
			Steps: []StepDefinition{
				{Name: "initial_review", RequiredRole: ApprovalRoleAnalyst},
				{Name: "disposition", RequiredRole: ApprovalRoleReviewer, RequiresApproval: true},
			},
		},
		WorkflowCaseInvestigation: {
			Kind: WorkflowCaseInvestigation,
			Steps: []StepDefinition{
				{Name: "evidence_gathering", RequiredRole: ApprovalRoleAnalyst},
				{Name: "findings_review", RequiredRole: ApprovalRoleReviewer, RequiresApproval: true},
				{Name: "closure_decision", RequiredRole: ApprovalRoleOfficer, RequiresApproval: true},
			},
		},
		WorkflowSARFiling: {
			Kind: WorkflowSARFiling,
			Steps: []StepDefinition{
				{Name: "narrative_draft", RequiredRole: ApprovalRoleAnalyst},
				{Name: "compliance_review", RequiredRole: ApprovalRoleReviewer, RequiresApproval: true},
				{Name: "officer_signoff", RequiredRole: ApprovalRoleOfficer, RequiresApproval: true},
				{Name: "submission", RequiredRole: ApprovalRoleOfficer},
			},
		},
		WorkflowPeriodicReview: {
			Kind: WorkflowPeriodicReview,
			Steps: []StepDefinition{
				{Name: "profile_refresh", RequiredRole: ApprovalRoleAnalyst},
				{Name: "review_signoff", RequiredRole: ApprovalRoleReviewer, RequiresApproval: true},
			},
		},
	}
}

// StepInstance is the runtime state of one templated step
type StepInstance struct {
	Name       string       `json:"name"`
	Status     StepStatus   `json:"status"`
	AssignedTo *uuid.UUID   `json:"assigned_to,omitempty"`
	Approval   *ApprovalDecision `json:"approval,omitempty"`
	StartedAt  *time.Time   `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// WorkflowInstance binds a template to a subject (alert, case, or SAR) and
// tracks step progress (§3, §4.8)
type WorkflowInstance struct {
	WorkflowID uuid.UUID            `json:"workflow_id" db:"workflow_id"`
	Kind       WorkflowTemplateKind `json:"kind" db:"kind"`
	SubjectID  uuid.UUID            `json:"subject_id" db:"subject_id"`
	Steps      []StepInstance       `json:"steps" db:"-"`
	CurrentStep int                 `json:"current_step" db:"current_step"`
	Completed  bool                 `json:"completed" db:"completed"`
	Cancelled  bool                 `json:"cancelled" db:"cancelled"`
	DueDate    time.Time            `json:"due_date" db:"due_date"`
	CreatedAt  time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" db:"updated_at"`
}

// IsOverdue reports whether the workflow's due date has passed and it is
// neither completed nor cancelled (§4.8).
func (w *WorkflowInstance) IsOverdue(now time.Time) bool {
	return !w.Completed && !w.Cancelled && now.After(w.DueDate)
}

// ActiveStep returns the current step instance, or nil when complete.
func (w *WorkflowInstance) ActiveStep() *StepInstance {
	if w.Completed || w.CurrentStep >= len(w.Steps) {
		return nil
	}
	return &w.Steps[w.CurrentStep]
}

// Advance marks the active step done and moves to the next one, marking the
// workflow complete once all steps are done.
func (w *WorkflowInstance) Advance() {
	if step := w.ActiveStep(); step != nil {
		step.Status = StepDone
		now := w.UpdatedAt
		step.CompletedAt = &now
	}
	w.CurrentStep++
	if w.CurrentStep >= len(w.Steps) {
		w.Completed = true
	}
}
