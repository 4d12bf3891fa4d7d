package lifecycle

import (
	"context"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/banking/aml-core/internal/numbering"
	"github.com/google/uuid"
)

// RequiredApprovalRoles is the default requires_approval_from set for a
// SAR (§4.7): compliance officer and BSA officer sign-off (modeled here as
// reviewer + officer roles shared with the override workflow).
func RequiredApprovalRoles() []domain.ApprovalRole {
	return []domain.ApprovalRole{domain.ApprovalRoleReviewer, domain.ApprovalRoleOfficer}
}

// CreateSAR opens a new SAR in draft status, bound to a case, with the
// filing deadline computed from the trigger date (§4.7).
func CreateSAR(ctx context.Context, gen numbering.Generator, sarType domain.SARType, caseID uuid.UUID, triggerDate time.Time) (*domain.SAR, error) {
	now := time.Now()
	number, err := gen.Next(ctx, numbering.KindSAR, now.Format("20060102"))
	if err != nil {
		return nil, err
	}
	s := &domain.SAR{
		SARID:       uuid.New(),
		Number:      number,
		Type:        sarType,
		Status:      domain.SARDraft,
		CaseID:      caseID,
		TriggerDate: triggerDate,
		Approvals:   &domain.ApprovalSet{Required: RequiredApprovalRoles()},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.RecomputeFilingDeadline()
	return s, nil
}

// AddSubject appends a subject and recomputes the filing deadline (adding
// the first subject tightens the window from 60 to 30 days).
func AddSubject(s *domain.SAR, subject domain.SARSubject) {
	s.Subjects = append(s.Subjects, subject)
	s.RecomputeFilingDeadline()
	s.UpdatedAt = time.Now()
}

// AddActivity appends a suspicious activity record.
func AddActivity(s *domain.SAR, activity domain.SuspiciousActivityRecord) {
	s.Activity = append(s.Activity, activity)
	s.UpdatedAt = time.Now()
}

// AddTransaction appends a transaction ID to the TransactionIDs of the
// suspicious activity record at the given index, recording which
// transactions evidence that line item.
func AddTransaction(s *domain.SAR, activityIndex int, transactionID uuid.UUID) error {
	if activityIndex < 0 || activityIndex >= len(s.Activity) {
		return errs.Invalid("activity index out of range")
	}
	s.Activity[activityIndex].TransactionIDs = append(s.Activity[activityIndex].TransactionIDs, transactionID)
	s.UpdatedAt = time.Now()
	return nil
}

// AddNarrative appends a new version of a narrative section (WHO, WHAT,
// WHEN, WHERE, WHY, HOW); each edit is a new version, never a mutation of
// the prior one.
func AddNarrative(s *domain.SAR, section, text string, authorID uuid.UUID) {
	version := 1
	for _, existing := range s.Narrative {
		if existing.Section == section && existing.Version >= version {
			version = existing.Version + 1
		}
	}
	s.Narrative = append(s.Narrative, domain.NarrativeSection{
		Section:   section,
		Text:      text,
		Version:   version,
		UpdatedBy: authorID,
		UpdatedAt: time.Now(),
	})
	s.UpdatedAt = time.Now()
}

// SubmitForApproval transitions draft -> pending_review -> pending_approval.
func SubmitForApproval(s *domain.SAR) error {
	if s.Status != domain.SARDraft && s.Status != domain.SARAmended {
		return errs.Invalid("SAR must be in draft or amended status to submit for approval")
	}
	s.Status = domain.SARPendingApproval
	s.UpdatedAt = time.Now()
	return nil
}

// ApproveSAR records one role's approval; status moves to `approved` only
// once the union of approved roles covers requires_approval_from (§4.7).
func ApproveSAR(s *domain.SAR, role domain.ApprovalRole, actorID uuid.UUID, comment string) error {
	if s.Status != domain.SARPendingApproval && s.Status != domain.SARPendingReview {
		return errs.Invalid("SAR is not awaiting approval")
	}
	s.Approvals.Decisions = append(s.Approvals.Decisions, domain.ApprovalDecision{
		Role: role, ActorID: actorID, Approved: true, Comment: comment, DecidedAt: time.Now(),
	})
	if s.Approvals.IsComplete() {
		s.Status = domain.SARApproved
	}
	s.UpdatedAt = time.Now()
	return nil
}

// RejectSAR records a rejection and returns the SAR to draft for revision.
func RejectSAR(s *domain.SAR, role domain.ApprovalRole, actorID uuid.UUID, reason string) error {
	s.Approvals.Decisions = append(s.Approvals.Decisions, domain.ApprovalDecision{
		Role: role, ActorID: actorID, Approved: false, Comment: reason, DecidedAt: time.Now(),
	})
	s.Status = domain.SARDraft
	s.UpdatedAt = time.Now()
	return nil
}

// FileSAR transitions approved -> submitted. Filing is permitted only from
// `approved`; attempting to file without complete approvals is rejected
// (§7, §8 end-to-end scenario 6).
func FileSAR(s *domain.SAR, submittedBy uuid.UUID) (*domain.Submission, error) {
	if s.Status != domain.SARApproved {
		return nil, errs.Invalid("SAR must be approved before filing")
	}
	submission := domain.Submission{
		SubmissionID: uuid.New(),
		SubmittedBy:  submittedBy,
		SubmittedAt:  time.Now(),
	}
	s.Submissions = append(s.Submissions, submission)
	s.Status = domain.SARSubmitted
	s.UpdatedAt = time.Now()
	return &submission, nil
}

// AcknowledgeSAR records the regulator's confirmation number.
func AcknowledgeSAR(s *domain.SAR, confirmationNumber string) error {
	if s.Status != domain.SARSubmitted {
		return errs.Invalid("SAR must be submitted before it can be acknowledged")
	}
	if len(s.Submissions) == 0 {
		return errs.Invalid("SAR has no submission record")
	}
	s.Submissions[len(s.Submissions)-1].ConfirmationNumber = confirmationNumber
	s.Submissions[len(s.Submissions)-1].Outcome = "ACCEPTED"
	s.Status = domain.SARAccepted
	s.UpdatedAt = time.Now()
	return nil
}

// AmendSAR moves a rejected or accepted SAR to amended, in place. It takes
// no prior SAR number and records no reference to one.
func AmendSAR(s *domain.SAR) error {
	if s.Status != domain.SARRejected && s.Status != domain.SARAccepted {
		return errs.Invalid("only a rejected or accepted SAR can be amended")
	}
	s.Status = domain.SARAmended
	s.UpdatedAt = time.Now()
	return nil
}
