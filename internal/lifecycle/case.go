package lifecycle

import (
	"context"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/banking/aml-core/internal/numbering"
	"github.com/google/uuid"
)

// CreateCase opens a new case in draft status with an automatic creation
// timeline entry (§4.7).
func CreateCase(ctx context.Context, gen numbering.Generator, category domain.CaseCategory, priority domain.CasePriority, actorID uuid.UUID, alertIDs []uuid.UUID) (*domain.Case, error) {
	now := time.Now()
	number, err := gen.Next(ctx, numbering.KindCase, now.Format("20060102"))
	if err != nil {
		return nil, err
	}
	c := &domain.Case{
		CaseID:    uuid.New(),
		Number:    number,
		Category:  category,
		Priority:  priority,
		Status:    domain.CaseDraft,
		AlertIDs:  alertIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.RecomputeDueDate()
	appendCaseTimeline(c, "CREATED", "case created", actorID)
	return c, nil
}

func appendCaseTimeline(c *domain.Case, kind, summary string, actorID uuid.UUID) {
	c.Timeline = append(c.Timeline, domain.TimelineEntry{
		EntryID:   uuid.New(),
		Kind:      kind,
		Summary:   summary,
		ActorID:   actorID,
		CreatedAt: time.Now(),
	})
}

// OpenCase transitions draft -> open.
func OpenCase(c *domain.Case, actorID uuid.UUID) error {
	if !domain.CanTransitionCase(c.Status, domain.CaseOpen) {
		return errs.Invalid("cannot open case in status " + string(c.Status))
	}
	c.Status = domain.CaseOpen
	c.UpdatedAt = time.Now()
	appendCaseTimeline(c, "STATUS_CHANGE", "case opened", actorID)
	return nil
}

// AssignCase assigns the case to an investigator.
func AssignCase(c *domain.Case, assignedTo, actorID uuid.UUID) {
	c.AssignedTo = &assignedTo
	c.UpdatedAt = time.Now()
	appendCaseTimeline(c, "ASSIGNMENT", "case assigned", actorID)
}

// AddFinding appends an investigator finding with an automatic timeline entry.
func AddFinding(c *domain.Case, summary string, actorID uuid.UUID) {
	c.Findings = append(c.Findings, domain.Finding{
		FindingID: uuid.New(),
		Summary:   summary,
		AddedBy:   actorID,
		AddedAt:   time.Now(),
	})
	c.UpdatedAt = time.Now()
	appendCaseTimeline(c, "FINDING_ADDED", summary, actorID)
}

// AddDocument appends a document reference (path only).
func AddDocument(c *domain.Case, name, path string, actorID uuid.UUID) {
	c.Documents = append(c.Documents, domain.Document{
		DocumentID: uuid.New(),
		Name:       name,
		Path:       path,
		AddedBy:    actorID,
		AddedAt:    time.Now(),
	})
	c.UpdatedAt = time.Now()
	appendCaseTimeline(c, "DOCUMENT_ADDED", name, actorID)
}

// AddRelatedEntity links a case to an entity outside the alert/customer pair.
func AddRelatedEntity(c *domain.Case, entityID uuid.UUID, role string, actorID uuid.UUID) {
	c.RelatedEntities = append(c.RelatedEntities, domain.RelatedEntity{
		EntityID: entityID,
		Role:     role,
		AddedAt:  time.Now(),
	})
	c.UpdatedAt = time.Now()
	appendCaseTimeline(c, "RELATED_ENTITY_ADDED", role, actorID)
}

// LinkAlert adds an alert to the case's alert set.
func LinkAlert(c *domain.Case, alertID uuid.UUID, actorID uuid.UUID) {
	for _, id := range c.AlertIDs {
		if id == alertID {
			return
		}
	}
	c.AlertIDs = append(c.AlertIDs, alertID)
	c.UpdatedAt = time.Now()
	appendCaseTimeline(c, "ALERT_LINKED", "alert linked", actorID)
}

// EscalateCase transitions in_progress -> escalated.
func EscalateCase(c *domain.Case, actorID uuid.UUID) error {
	if !domain.CanTransitionCase(c.Status, domain.CaseEscalated) {
		return errs.Invalid("cannot escalate case in status " + string(c.Status))
	}
	c.Status = domain.CaseEscalated
	c.UpdatedAt = time.Now()
	appendCaseTimeline(c, "ESCALATED", "case escalated", actorID)
	return nil
}

// CloseCase transitions any open state to a closed state (§4.7: "any open
// state -> closed_no_action | closed_with_action").
func CloseCase(c *domain.Case, withAction bool, resolutionType, summary string, actorID uuid.UUID) error {
	target := domain.CaseClosedNoAction
	if withAction {
		target = domain.CaseClosedWithAction
	}
	if !domain.CanTransitionCase(c.Status, target) {
		return errs.Invalid("cannot close case in status " + string(c.Status))
	}
	now := time.Now()
	c.Status = target
	c.ClosedAt = &now
	c.ResolutionType = &resolutionType
	c.Summary = &summary
	c.UpdatedAt = now
	appendCaseTimeline(c, "CLOSED", summary, actorID)
	return nil
}

// IsCaseOverdue reports whether a case is past its due date and not closed.
func IsCaseOverdue(c *domain.Case, now time.Time) bool {
	return !domain.IsClosedCaseStatus(c.Status) && now.After(c.DueDate)
}
