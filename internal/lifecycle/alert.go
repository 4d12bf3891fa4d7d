// Package lifecycle implements the Alert/Case/SAR state machines and the
// commands that mutate them (spec.md §4.7). Callers hold the appropriate
// per-entity lock (internal/concurrency) before invoking these commands;
// the package itself does no locking.
package lifecycle

import (
	"context"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/banking/aml-core/internal/numbering"
	"github.com/google/uuid"
)

// CreateAlert materializes one or more detected patterns into a new Alert,
// assigning its number and initial due date (§4.7, §8 due-date invariant).
func CreateAlert(ctx context.Context, gen numbering.Generator, customerID, accountID uuid.UUID, severity domain.Severity, patternIDs []uuid.UUID, riskScore int) (*domain.Alert, error) {
	now := time.Now()
	number, err := gen.Next(ctx, numbering.KindAlert, now.Format("20060102"))
	if err != nil {
		return nil, err
	}
	a := &domain.Alert{
		AlertID:    uuid.New(),
		Number:     number,
		Status:     domain.AlertNew,
		Severity:   severity,
		CustomerID: customerID,
		AccountID:  accountID,
		PatternIDs: patternIDs,
		RiskScore:  riskScore,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	a.RecomputeDueDate()
	return a, nil
}

// AssignAlert transitions new->assigned (or re-assigns from under_review)
// and appends to the append-only assignment history (§4.7).
func AssignAlert(a *domain.Alert, assignedTo, assignedBy uuid.UUID, reason string) error {
	target := domain.AlertAssigned
	if a.Status != domain.AlertNew && !domain.CanTransitionAlert(a.Status, target) {
		return errs.Invalid("cannot assign alert in status " + string(a.Status))
	}
	a.Assignments = append(a.Assignments, domain.AssignmentEntry{
		AssignedTo: assignedTo,
		AssignedBy: assignedBy,
		AssignedAt: time.Now(),
		Reason:     reason,
	})
	a.Status = target
	a.UpdatedAt = time.Now()
	return nil
}

// UpdateAlertSeverity changes severity and recomputes due_date (§8
// invariant: due_date = created_at + SLA(severity) after any severity
// change).
func UpdateAlertSeverity(a *domain.Alert, severity domain.Severity) {
	a.Severity = severity
	a.RecomputeDueDate()
	a.UpdatedAt = time.Now()
}

// EscalateAlert transitions under_review -> escalated.
func EscalateAlert(a *domain.Alert) error {
	if !domain.CanTransitionAlert(a.Status, domain.AlertEscalated) {
		return errs.Invalid("cannot escalate alert in status " + string(a.Status))
	}
	a.Status = domain.AlertEscalated
	a.UpdatedAt = time.Now()
	return nil
}

// CloseAlert transitions into a closed state, setting closed_at exactly on
// the transition (§4.7 invariant).
func CloseAlert(a *domain.Alert, isTruePositive bool, resolution string) error {
	target := domain.AlertClosedFalsePositive
	if isTruePositive {
		target = domain.AlertClosedTruePositive
	}
	if !domain.CanTransitionAlert(a.Status, target) {
		return errs.Invalid("cannot close alert in status " + string(a.Status))
	}
	now := time.Now()
	a.Status = target
	a.ClosedAt = &now
	a.Resolution = &resolution
	a.UpdatedAt = now
	return nil
}

// FileAlertSAR transitions closed_true_positive -> sar_filed.
func FileAlertSAR(a *domain.Alert) error {
	if !domain.CanTransitionAlert(a.Status, domain.AlertSARFiled) {
		return errs.Invalid("alert must be closed_true_positive before filing a SAR")
	}
	a.Status = domain.AlertSARFiled
	a.UpdatedAt = time.Now()
	return nil
}

// AddComment appends to the append-only comment log.
func AddComment(a *domain.Alert, authorID uuid.UUID, text string) {
	a.Comments = append(a.Comments, domain.Comment{
		CommentID: uuid.New(),
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	})
	a.UpdatedAt = time.Now()
}

// AddEvidence appends an evidence reference (path only, never bytes).
func AddEvidence(a *domain.Alert, description, path string, addedBy uuid.UUID) {
	a.Evidence = append(a.Evidence, domain.Evidence{
		EvidenceID:  uuid.New(),
		Description: description,
		Path:        path,
		AddedBy:     addedBy,
		AddedAt:     time.Now(),
	})
	a.UpdatedAt = time.Now()
}

// IsAlertOverdue reports whether an alert is past its due date and not closed.
func IsAlertOverdue(a *domain.Alert, now time.Time) bool {
	return !domain.IsClosedAlertStatus(a.Status) && now.After(a.DueDate)
}
