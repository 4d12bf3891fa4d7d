package workflow

import (
	"testing"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSkipStepFailsWhenRequired(t *testing.T) {
	inst, err := Start(domain.WorkflowCaseInvestigation, uuid.New(), time.Now().Add(48*time.Hour))
	assert.NoError(t, err)

	assert.NoError(t, inst.CompleteStep())

	assert.Error(t, inst.SkipStep(), "findings_review requires approval and cannot be skipped")
}

func TestApprovalSetEmptyAutoCompletesStep(t *testing.T) {
	inst, err := Start(domain.WorkflowAlertTriage, uuid.New(), time.Now().Add(24*time.Hour))
	assert.NoError(t, err)

	assert.NoError(t, inst.CompleteStep())
	assert.Equal(t, 1, inst.CurrentStep)

	assert.NoError(t, inst.RequestApproval(domain.ApprovalRoleReviewer))
	assert.NoError(t, inst.ApproveStep(domain.ApprovalRoleReviewer, uuid.New()))

	assert.True(t, inst.Completed)
}

func TestRejectStepIsTerminal(t *testing.T) {
	inst, err := Start(domain.WorkflowAlertTriage, uuid.New(), time.Now().Add(24*time.Hour))
	assert.NoError(t, err)
	assert.NoError(t, inst.CompleteStep())

	assert.NoError(t, inst.RequestApproval(domain.ApprovalRoleReviewer))
	inst.RejectStep(domain.ApprovalRoleReviewer, uuid.New(), "insufficient evidence")

	assert.Error(t, inst.CompleteStep())
	assert.False(t, inst.Completed)
}

func TestCancelIsTerminal(t *testing.T) {
	inst, err := Start(domain.WorkflowPeriodicReview, uuid.New(), time.Now().Add(24*time.Hour))
	assert.NoError(t, err)
	inst.Cancel()

	assert.Error(t, inst.CompleteStep())
	assert.True(t, inst.Cancelled)
}

func TestOverdueInvariant(t *testing.T) {
	inst, err := Start(domain.WorkflowPeriodicReview, uuid.New(), time.Now().Add(-time.Hour))
	assert.NoError(t, err)

	assert.True(t, inst.IsOverdue(time.Now()))

	inst.Cancel()
	assert.False(t, inst.IsOverdue(time.Now()), "cancelled workflows are never overdue")
}

func TestReassignActiveStep(t *testing.T) {
	inst, err := Start(domain.WorkflowCaseInvestigation, uuid.New(), time.Now().Add(24*time.Hour))
	assert.NoError(t, err)

	newAssignee := uuid.New()
	assert.NoError(t, inst.Reassign(newAssignee))
	assert.Equal(t, newAssignee, *inst.Steps[0].AssignedTo)
}
