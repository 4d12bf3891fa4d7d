package lifecycle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/numbering"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAlertDueDateInvariant(t *testing.T) {
	gen := numbering.NewMemoryGenerator()
	a, err := CreateAlert(context.Background(), gen, uuid.New(), uuid.New(), domain.SeverityHigh, nil, 80)
	assert.NoError(t, err)
	assert.Equal(t, a.CreatedAt.Add(domain.AlertSLA(domain.SeverityHigh)), a.DueDate)

	UpdateAlertSeverity(a, domain.SeverityCritical)
	assert.Equal(t, a.CreatedAt.Add(domain.AlertSLA(domain.SeverityCritical)), a.DueDate)
}

func TestClosedCaseInvariant(t *testing.T) {
	gen := numbering.NewMemoryGenerator()
	c, err := CreateCase(context.Background(), gen, domain.CaseMoneyLaundering, domain.CasePriorityHigh, uuid.New(), nil)
	assert.NoError(t, err)
	assert.NoError(t, OpenCase(c, uuid.New()))
	assert.NoError(t, CloseCase(c, true, "action_taken", "closed after review", uuid.New()))

	assert.NotNil(t, c.ClosedAt)
	assert.True(t, domain.IsClosedCaseStatus(c.Status))
}

func TestAlertNumberingMonotonic(t *testing.T) {
	gen := numbering.NewMemoryGenerator()
	ctx := context.Background()
	var numbers []string
	for i := 0; i < 5; i++ {
		a, err := CreateAlert(ctx, gen, uuid.New(), uuid.New(), domain.SeverityLow, nil, 10)
		assert.NoError(t, err)
		numbers = append(numbers, a.Number)
	}
	for i, n := range numbers {
		assert.Equal(t, fmt.Sprintf("ALT-%s-%06d", time.Now().Format("20060102"), i+1), n)
	}
}

func TestSARLifecycleEndToEnd(t *testing.T) {
	gen := numbering.NewMemoryGenerator()
	ctx := context.Background()
	caseID := uuid.New()

	s, err := CreateSAR(ctx, gen, domain.SARSuspiciousActivity, caseID, time.Now())
	assert.NoError(t, err)

	AddSubject(s, domain.SARSubject{EntityID: uuid.New(), Role: "SUBJECT", Name: "Jane Doe"})
	AddActivity(s, domain.SuspiciousActivityRecord{ActivityType: "STRUCTURING"})
	AddNarrative(s, "WHO", "Jane Doe, account holder", uuid.New())
	AddNarrative(s, "WHAT", "Multiple below-threshold cash deposits", uuid.New())

	assert.NoError(t, SubmitForApproval(s))

	_, err = FileSAR(s, uuid.New())
	assert.Error(t, err, "filing before approvals must fail")

	assert.NoError(t, ApproveSAR(s, domain.ApprovalRoleReviewer, uuid.New(), "looks complete"))
	assert.Equal(t, domain.SARPendingApproval, s.Status)
	assert.NoError(t, ApproveSAR(s, domain.ApprovalRoleOfficer, uuid.New(), "confirmed"))
	assert.Equal(t, domain.SARApproved, s.Status)

	submission, err := FileSAR(s, uuid.New())
	assert.NoError(t, err)
	assert.NotNil(t, submission)
	assert.Equal(t, domain.SARSubmitted, s.Status)
}
