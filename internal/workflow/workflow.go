// Package workflow implements the templated multi-step workflow
// orchestrator (spec.md §4.8): complete_step, skip_step, request_approval,
// approve_step, reject_step, cancel, reassign.
package workflow

import (
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/google/uuid"
)

// approvalState is tracked out-of-band from domain.StepStatus since the
// spec models it as a workflow-level mode, not a step status; a workflow
// in this mode still reports its current step as IN_PROGRESS.
type approvalState struct {
	awaiting        bool
	pendingApprovers map[domain.ApprovalRole]bool
}

// Instance wraps a domain.WorkflowInstance with the runtime approval state
// the spec requires but that does not belong in the persisted struct.
type Instance struct {
	domain.WorkflowInstance
	approval approvalState
}

// Start creates a new workflow instance bound to a template and subject.
func Start(kind domain.WorkflowTemplateKind, subjectID uuid.UUID, dueDate time.Time) (*Instance, error) {
	templates := domain.DefaultTemplates()
	tmpl, ok := templates[kind]
	if !ok {
		return nil, errs.Invalid("unknown workflow template")
	}
	steps := make([]domain.StepInstance, len(tmpl.Steps))
	for i, def := range tmpl.Steps {
		status := domain.StepPending
		if i == 0 {
			status = domain.StepInProgress
		}
		steps[i] = domain.StepInstance{Name: def.Name, Status: status}
	}
	now := time.Now()
	return &Instance{
		WorkflowInstance: domain.WorkflowInstance{
			WorkflowID: uuid.New(),
			Kind:       kind,
			SubjectID:  subjectID,
			Steps:      steps,
			DueDate:    dueDate,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}, nil
}

func (inst *Instance) template() domain.WorkflowTemplate {
	return domain.DefaultTemplates()[inst.Kind]
}

// CompleteStep advances the current step. Completing a step that requires
// approval without having gone through RequestApproval/ApproveStep is
// rejected.
func (inst *Instance) CompleteStep() error {
	if err := inst.requireActive(); err != nil {
		return err
	}
	def := inst.template().Steps[inst.CurrentStep]
	if def.RequiresApproval && !stepApproved(inst) {
		return errs.Invalid("step requires approval before it can be completed")
	}
	inst.approval = approvalState{}
	inst.Advance()
	if !inst.Completed {
		inst.Steps[inst.CurrentStep].Status = domain.StepInProgress
	}
	inst.UpdatedAt = time.Now()
	return nil
}

func (inst *Instance) requireActive() error {
	if inst.Completed {
		return errs.Invalid("workflow already completed")
	}
	if inst.Cancelled {
		return errs.Invalid("workflow is cancelled")
	}
	if inst.ActiveStep() != nil && inst.ActiveStep().Status == domain.StepFailed {
		return errs.Invalid("workflow step was rejected")
	}
	return nil
}

func stepApproved(inst *Instance) bool {
	step := inst.ActiveStep()
	return step != nil && step.Approval != nil && step.Approval.Approved
}

// SkipStep fails if the current step is required to be completed with
// approval; a required step cannot be skipped (§4.8).
func (inst *Instance) SkipStep() error {
	if err := inst.requireActive(); err != nil {
		return err
	}
	def := inst.template().Steps[inst.CurrentStep]
	if def.RequiresApproval {
		return errs.Invalid("cannot skip required step")
	}
	inst.Steps[inst.CurrentStep].Status = domain.StepSkipped
	inst.Advance()
	if !inst.Completed {
		inst.Steps[inst.CurrentStep].Status = domain.StepInProgress
	}
	inst.UpdatedAt = time.Now()
	return nil
}

// RequestApproval transitions the workflow into awaiting_approval with a
// pending-approvers set seeded from the given roles. Each
// approval removes one approver; an empty set auto-completes the current
// step (§4.8).
func (inst *Instance) RequestApproval(requiredRoles ...domain.ApprovalRole) error {
	if err := inst.requireActive(); err != nil {
		return err
	}
	pending := make(map[domain.ApprovalRole]bool, len(requiredRoles))
	for _, r := range requiredRoles {
		pending[r] = true
	}
	inst.approval = approvalState{awaiting: true, pendingApprovers: pending}
	inst.UpdatedAt = time.Now()
	return nil
}

// ApproveStep removes one pending approver; once the set is empty the
// current step auto-completes.
func (inst *Instance) ApproveStep(role domain.ApprovalRole, actorID uuid.UUID) error {
	if !inst.approval.awaiting {
		return errs.Invalid("workflow is not awaiting approval")
	}
	delete(inst.approval.pendingApprovers, role)
	step := inst.ActiveStep()
	if step != nil {
		step.Approval = &domain.ApprovalDecision{Role: role, ActorID: actorID, Approved: true, DecidedAt: time.Now()}
	}
	if len(inst.approval.pendingApprovers) == 0 {
		inst.approval.awaiting = false
		return inst.CompleteStep()
	}
	return nil
}

// RejectStep is terminal: the workflow stops advancing and the current
// step is marked failed.
func (inst *Instance) RejectStep(role domain.ApprovalRole, actorID uuid.UUID, reason string) {
	step := inst.ActiveStep()
	if step != nil {
		step.Status = domain.StepFailed
		step.Approval = &domain.ApprovalDecision{Role: role, ActorID: actorID, Approved: false, Comment: reason, DecidedAt: time.Now()}
	}
	inst.approval = approvalState{}
	inst.UpdatedAt = time.Now()
}

// Cancel marks the workflow cancelled; this is terminal.
func (inst *Instance) Cancel() {
	inst.Cancelled = true
	inst.UpdatedAt = time.Now()
}

// Reassign changes the assignee of the current step.
func (inst *Instance) Reassign(assignedTo uuid.UUID) error {
	step := inst.ActiveStep()
	if step == nil {
		return errs.Invalid("no active step to reassign")
	}
	step.AssignedTo = &assignedTo
	inst.UpdatedAt = time.Now()
	return nil
}

