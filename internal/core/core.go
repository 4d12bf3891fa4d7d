// Package core wires every subsystem of the AML analytical core into a
// single composition root, AmlCore, exposing the operations of spec.md §6.
// State is held in per-kind in-memory maps guarded by a shared keyed
// mutex; the maps are not behind interfaces, and nothing in this package
// persists them.
package core

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/banking/aml-core/internal/concurrency"
	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/banking/aml-core/internal/jobs"
	"github.com/banking/aml-core/internal/lifecycle"
	"github.com/banking/aml-core/internal/metrics"
	"github.com/banking/aml-core/internal/numbering"
	"github.com/banking/aml-core/internal/patterns"
	"github.com/banking/aml-core/internal/refdata"
	"github.com/banking/aml-core/internal/resolution"
	"github.com/banking/aml-core/internal/risk"
	"github.com/banking/aml-core/internal/rules"
	"github.com/banking/aml-core/internal/screening"
	"github.com/banking/aml-core/internal/service"
	"github.com/banking/aml-core/internal/workflow"
	"github.com/google/uuid"
)

// AmlCore is the single entry point every transport (API handler, Kafka
// consumer, cron job) calls into. It owns no network clients directly;
// those are injected by the caller at construction.
type AmlCore struct {
	RefData      *refdata.Store
	Numbering    numbering.Generator
	Metrics      *metrics.Registry
	Jobs         *jobs.Pool
	Rules        *rules.Engine
	Catalog      risk.CatalogLookup
	AuditService *service.AuditService

	locks *concurrency.KeyedMutex

	mu         sync.RWMutex
	alerts     map[uuid.UUID]*domain.Alert
	cases      map[uuid.UUID]*domain.Case
	sars       map[uuid.UUID]*domain.SAR
	entities   map[uuid.UUID]*domain.MasterEntity
	profiles   map[uuid.UUID]*domain.CustomerRiskProfile
	workflows  map[uuid.UUID]*workflow.Instance
	candidates map[uuid.UUID]*domain.MatchCandidate
	candidateRecords map[uuid.UUID]domain.SourceRecord
}

// New constructs an AmlCore over the given reference-data store, numbering
// generator, metrics registry, worker pool, and risk catalog lookup.
func New(snap *refdata.Store, gen numbering.Generator, reg *metrics.Registry, pool *jobs.Pool, catalog risk.CatalogLookup) *AmlCore {
	return &AmlCore{
		RefData:   snap,
		Numbering: gen,
		Metrics:   reg,
		Jobs:      pool,
		Rules:     rules.NewEngine(reg),
		Catalog:   catalog,
		locks:     concurrency.NewKeyedMutex(),
		alerts:    make(map[uuid.UUID]*domain.Alert),
		cases:     make(map[uuid.UUID]*domain.Case),
		sars:      make(map[uuid.UUID]*domain.SAR),
		entities:  make(map[uuid.UUID]*domain.MasterEntity),
		profiles:  make(map[uuid.UUID]*domain.CustomerRiskProfile),
		workflows: make(map[uuid.UUID]*workflow.Instance),
		candidates:       make(map[uuid.UUID]*domain.MatchCandidate),
		candidateRecords: make(map[uuid.UUID]domain.SourceRecord),
	}
}

// WithAuditService attaches the audit trail service so alert creation,
// entity merges and match-candidate review decisions are recorded to the
// immutable audit ledger; case and SAR transitions are not recorded. Audit
// emission is best-effort: a logging failure never rolls back the change
// that triggered it.
func (c *AmlCore) WithAuditService(audit *service.AuditService) *AmlCore {
	c.AuditService = audit
	return c
}

// emitAudit records a lifecycle transition to the audit ledger when an
// AuditService is attached. Failures are swallowed here; ProcessAndStoreEvent
// already logs them, and a missing audit record must not block the state
// change that already happened.
func (c *AmlCore) emitAudit(ctx context.Context, actorID uuid.UUID, action domain.ActionType, resource domain.ResourceType, resourceID string) {
	if c.AuditService == nil {
		return
	}
	event := domain.NewAuditEvent(actorID, action, resource, resourceID)
	_ = c.AuditService.ProcessAndStoreEvent(ctx, event)
}

// MonitorTransaction runs the six canonical rule evaluators over a single
// transaction and opens an alert for every pattern produced (§4.4, §6).
func (c *AmlCore) MonitorTransaction(ctx context.Context, tx domain.Transaction, custCtx domain.CustomerContext) ([]*domain.Alert, error) {
	snap := c.RefData.Current()
	patternsFound := c.Rules.Evaluate(tx, custCtx, snap.Rules)

	unlock := c.locks.LockMulti(tx.CustomerID.String())
	defer unlock()

	var alerts []*domain.Alert
	for _, p := range patternsFound {
		severity := p.Severity
		alert, err := lifecycle.CreateAlert(ctx, c.Numbering, tx.CustomerID, tx.SourceAccountID, severity, []uuid.UUID{p.PatternID}, int(p.Confidence*100))
		if err != nil {
			return alerts, err
		}
		c.mu.Lock()
		c.alerts[alert.AlertID] = alert
		c.mu.Unlock()
		if c.Metrics != nil {
			c.Metrics.AlertsCreated.WithLabelValues(string(severity)).Inc()
		}
		c.emitAudit(ctx, tx.CustomerID, domain.ActionTypeCreate, domain.ResourceTypeAMLFlag, alert.AlertID.String())
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// RunBatchAnalysis runs the batch pattern detectors (structuring,
// layering, round-tripping, rapid movement) over a window of transactions
// grouped by customer, opening alerts for every pattern found (§4.5, §6).
// Work is bounded by the configured worker pool so a single customer's
// detector panic cannot stall the sweep.
func (c *AmlCore) RunBatchAnalysis(ctx context.Context, byCustomer map[uuid.UUID][]domain.Transaction, threshold, minCount float64) (*jobs.Job, []*domain.Alert) {
	job := jobs.NewJob("batch_analysis")
	var mu sync.Mutex
	var alerts []*domain.Alert

	customers := make([]uuid.UUID, 0, len(byCustomer))
	for id := range byCustomer {
		customers = append(customers, id)
	}

	tasks := make([]jobs.Task, len(customers))
	for i, customerID := range customers {
		customerID := customerID
		txs := byCustomer[customerID]
		tasks[i] = func(taskCtx context.Context) (bool, error) {
			matched := false
			if p := patterns.DetectStructuringBatch(customerID, txs, threshold, minCount); p != nil {
				matched = true
				if a, err := c.openAlertForPattern(taskCtx, customerID, p); err == nil {
					mu.Lock()
					alerts = append(alerts, a)
					mu.Unlock()
				}
			}
			rr := patterns.DetectRapidMovementBatch(txs, 1.0, 0.9, 0)
			rr = append(rr, patterns.DetectLayering(txs)...)
			rr = append(rr, patterns.DetectRoundTripping(txs)...)
			if len(rr) > 0 {
				matched = true
				for _, p := range rr {
					p := p
					if a, err := c.openAlertForPattern(taskCtx, customerID, &p); err == nil {
						mu.Lock()
						alerts = append(alerts, a)
						mu.Unlock()
					}
				}
			}
			return matched, nil
		}
	}

	c.Jobs.Run(ctx, job, tasks)
	return job, alerts
}

func (c *AmlCore) openAlertForPattern(ctx context.Context, customerID uuid.UUID, p *domain.DetectedPattern) (*domain.Alert, error) {
	unlock := c.locks.LockMulti(customerID.String())
	defer unlock()

	alert, err := lifecycle.CreateAlert(ctx, c.Numbering, customerID, uuid.Nil, p.Severity, []uuid.UUID{p.PatternID}, int(p.Confidence*100))
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.alerts[alert.AlertID] = alert
	c.mu.Unlock()
	if c.Metrics != nil {
		c.Metrics.AlertsCreated.WithLabelValues(string(p.Severity)).Inc()
	}
	c.emitAudit(ctx, customerID, domain.ActionTypeCreate, domain.ResourceTypeAMLFlag, alert.AlertID.String())
	return alert, nil
}

// ScreenEntity screens one subject against the current watchlist snapshot.
// Any hit scoring >= 0.95 flips the subject entity's SanctionsMatch flag and
// opens a high-severity alert; hits scoring in [request.Threshold, 0.95)
// instead open a medium-severity alert, and the hit itself keeps status
// pending review (§4.2, §6, §8 scenario 2).
func (c *AmlCore) ScreenEntity(ctx context.Context, req screening.Request) (domain.ScreeningResult, []*domain.Alert) {
	res := screening.Screen(req, c.RefData.Current())
	if c.Metrics != nil {
		for _, hit := range res.Hits {
			c.Metrics.ScreeningHits.WithLabelValues(string(hit.Watchlist), string(hit.MatchType)).Inc()
		}
	}

	unlock := c.locks.LockMulti(req.Subject.EntityID.String())
	defer unlock()

	var alerts []*domain.Alert
	for i := range res.Hits {
		hit := &res.Hits[i]
		severity := domain.SeverityMedium
		if hit.Score >= 0.95 {
			severity = domain.SeverityHigh
			c.mu.Lock()
			if entity, ok := c.entities[req.Subject.EntityID]; ok {
				entity.SanctionsMatch = true
				entity.UpdatedAt = time.Now()
			}
			c.mu.Unlock()
		}

		alert, err := lifecycle.CreateAlert(ctx, c.Numbering, req.Subject.EntityID, uuid.Nil, severity, []uuid.UUID{hit.HitID}, int(hit.Score*100))
		if err != nil {
			continue
		}
		c.mu.Lock()
		c.alerts[alert.AlertID] = alert
		c.mu.Unlock()
		if c.Metrics != nil {
			c.Metrics.AlertsCreated.WithLabelValues(string(severity)).Inc()
		}
		c.emitAudit(ctx, req.Subject.EntityID, domain.ActionTypeCreate, domain.ResourceTypeAMLFlag, alert.AlertID.String())
		alerts = append(alerts, alert)
	}
	return res, alerts
}

// BatchScreen screens many subjects with bounded concurrency (§4.2, §6).
func (c *AmlCore) BatchScreen(ctx context.Context, subjects []screening.Subject, lists []domain.WatchlistType) (*jobs.Job, []screening.BatchResult) {
	job := jobs.NewJob("batch_screen")
	results := screening.BatchScreen(ctx, c.Jobs, job, subjects, lists, c.RefData.Current())
	return job, results
}

// ResolveEntity runs block -> compare -> auto-decide for one source record
// against the known master entities of the same kind, merging immediately
// when the matched rule permits auto-merge (§4.3, §6). Per-entity merges
// are serialized with the keyed mutex so two records resolving to the same
// master cannot interleave their updates.
func (c *AmlCore) ResolveEntity(record domain.SourceRecord, actorID uuid.UUID) (*resolution.Decision, *domain.MasterEntity, error) {
	snap := c.RefData.Current()

	c.mu.RLock()
	candidates := make([]domain.MasterEntity, 0, len(c.entities))
	for _, e := range c.entities {
		candidates = append(candidates, *e)
	}
	c.mu.RUnlock()

	decision, err := resolution.AutoDecide(record, candidates, snap.ResolutionRules)
	if err != nil {
		return nil, nil, err
	}

	if !decision.AutoMerge {
		if decision.Candidate != nil {
			c.mu.Lock()
			c.candidates[decision.Candidate.CandidateID] = decision.Candidate
			c.candidateRecords[decision.Candidate.CandidateID] = record
			c.mu.Unlock()
		}
		return decision, nil, nil
	}

	unlock := c.locks.LockMulti(decision.MergeInto.String())
	defer unlock()

	c.mu.Lock()
	entity, ok := c.entities[decision.MergeInto]
	c.mu.Unlock()
	if !ok {
		return decision, nil, errs.NotFound("master entity not found")
	}

	resolution.Merge(entity, record, actorID, 1.0, decision.MatchedRule)
	c.emitAudit(context.Background(), actorID, domain.ActionTypeUpdate, domain.ResourceTypeUser, entity.EntityID.String())
	return decision, entity, nil
}

// ReviewCandidate records a human decision on a MatchCandidate that
// ResolveEntity left pending (AutoMerge == false). Approving runs the same
// Merge a rule-driven auto-merge would have, under the merged entity's
// per-entity lock; rejecting only marks the candidate reviewed (§4.3, §6).
func (c *AmlCore) ReviewCandidate(candidateID, actorID uuid.UUID, approve bool) (*domain.MatchCandidate, *domain.MasterEntity, error) {
	c.mu.Lock()
	candidate, ok := c.candidates[candidateID]
	record := c.candidateRecords[candidateID]
	c.mu.Unlock()
	if !ok {
		return nil, nil, errs.NotFound("match candidate not found")
	}
	if candidate.Status != domain.CandidatePending {
		return nil, nil, errs.Invalid("candidate already reviewed")
	}

	now := time.Now()
	candidate.ReviewedAt = &now
	candidate.ReviewedBy = &actorID

	if !approve {
		candidate.Status = domain.CandidateRejected
		c.emitAudit(context.Background(), actorID, domain.ActionTypeReject, domain.ResourceTypeUser, candidate.CandidateID.String())
		return candidate, nil, nil
	}

	unlock := c.locks.LockMulti(candidate.MasterEntityID.String())
	defer unlock()

	c.mu.Lock()
	entity, ok := c.entities[candidate.MasterEntityID]
	c.mu.Unlock()
	if !ok {
		return candidate, nil, errs.NotFound("master entity not found")
	}

	resolution.Merge(entity, record, actorID, candidate.Overall, candidate.RuleCode)
	candidate.Status = domain.CandidateAccepted
	c.emitAudit(context.Background(), actorID, domain.ActionTypeApprove, domain.ResourceTypeUser, candidate.CandidateID.String())
	return candidate, entity, nil
}

// ScoreRiskFromKYC builds a CustomerProfile from the onboarding KYC record
// and scores it, letting the caller still override the
// behavioral/transactional fields KYC data doesn't carry.
func (c *AmlCore) ScoreRiskFromKYC(customerID uuid.UUID, kyc *domain.CustomerKYCProfile, behavioral risk.CustomerProfile, weights map[domain.RiskCategory]float64) (*domain.CustomerRiskProfile, error) {
	profile := risk.FromKYCProfile(kyc)
	profile.VelocityScore = behavioral.VelocityScore
	profile.ConsistencyScore = behavioral.ConsistencyScore
	profile.HighRiskCountryExposure = behavioral.HighRiskCountryExposure
	profile.OpenAlertCount = behavioral.OpenAlertCount
	profile.OpenCaseCount = behavioral.OpenCaseCount
	profile.PriorSARCount = behavioral.PriorSARCount
	profile.Product = behavioral.Product
	profile.Channel = behavioral.Channel
	profile.Industry = behavioral.Industry
	return c.ScoreRisk(customerID, profile, weights)
}

// ScoreRisk computes and stores a customer's composite risk profile (§4.6, §6).
func (c *AmlCore) ScoreRisk(customerID uuid.UUID, profile risk.CustomerProfile, weights map[domain.RiskCategory]float64) (*domain.CustomerRiskProfile, error) {
	snap := c.RefData.Current()
	scored, err := risk.Score(customerID, profile, snap, c.Catalog, weights)
	if err != nil {
		return nil, err
	}
	unlock := c.locks.LockMulti(customerID.String())
	defer unlock()
	c.mu.Lock()
	c.profiles[scored.ProfileID] = scored
	c.mu.Unlock()
	return scored, nil
}

// CreateWorkflow starts a new templated workflow instance bound to a
// subject (alert, case, or SAR) (§4.8, §6).
func (c *AmlCore) CreateWorkflow(kind domain.WorkflowTemplateKind, subjectID uuid.UUID, dueDate time.Time) (*workflow.Instance, error) {
	inst, err := workflow.Start(kind, subjectID, dueDate)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.workflows[inst.WorkflowID] = inst
	c.mu.Unlock()
	return inst, nil
}

// OverdueWorkflows returns every workflow whose due date has passed and
// whose status is neither completed nor cancelled (§4.8).
func (c *AmlCore) OverdueWorkflows(now time.Time) []*workflow.Instance {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*workflow.Instance
	for _, w := range c.workflows {
		if w.IsOverdue(now) {
			out = append(out, w)
		}
	}
	return out
}

// SearchAlerts returns a page of alerts matching criteria, sorted by
// created_at descending with ties broken by alert number ascending (§5
// ordering guarantees, §6).
func (c *AmlCore) SearchAlerts(criteria domain.AlertFilter) domain.AlertPage {
	c.mu.RLock()
	matched := make([]*domain.Alert, 0, len(c.alerts))
	for _, a := range c.alerts {
		if alertMatches(a, criteria) {
			matched = append(matched, a)
		}
	}
	c.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Number < matched[j].Number
	})

	total := len(matched)
	offset, limit := pageBounds(criteria.Offset, criteria.Limit, total)
	page := matched[offset:limit]

	items := make([]domain.AlertSummary, 0, len(page))
	for _, a := range page {
		items = append(items, domain.AlertSummary{
			AlertID:    a.AlertID,
			Number:     a.Number,
			Status:     a.Status,
			Severity:   a.Severity,
			CustomerID: a.CustomerID,
			RiskScore:  a.RiskScore,
			DueDate:    a.DueDate,
		})
	}
	return domain.AlertPage{Items: items, TotalCount: total, HasMore: limit < total}
}

func alertMatches(a *domain.Alert, f domain.AlertFilter) bool {
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.Severity != nil && a.Severity != *f.Severity {
		return false
	}
	if f.CustomerID != nil && a.CustomerID != *f.CustomerID {
		return false
	}
	if f.AssignedTo != nil {
		assigned := false
		for _, entry := range a.Assignments {
			if entry.AssignedTo == *f.AssignedTo {
				assigned = true
				break
			}
		}
		if !assigned {
			return false
		}
	}
	if f.From != nil && a.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && a.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func pageBounds(offset, limit, total int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		limit = total - offset
	}
	end = offset + limit
	if end > total {
		end = total
	}
	return offset, end
}

// GetStatistics aggregates the current alert population (§6).
func (c *AmlCore) GetStatistics(now time.Time) domain.AlertStatistics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := domain.AlertStatistics{
		BySeverity: make(map[domain.Severity]int),
		ByStatus:   make(map[domain.AlertStatus]int),
	}
	var resolutionHoursSum float64
	var resolvedCount int
	for _, a := range c.alerts {
		stats.BySeverity[a.Severity]++
		stats.ByStatus[a.Status]++
		if domain.IsClosedAlertStatus(a.Status) {
			stats.TotalClosed++
			if a.ClosedAt != nil {
				resolutionHoursSum += a.ClosedAt.Sub(a.CreatedAt).Hours()
				resolvedCount++
			}
		} else {
			stats.TotalOpen++
			if now.After(a.DueDate) {
				stats.OverdueCount++
			}
		}
	}
	if resolvedCount > 0 {
		stats.AverageResolutionH = resolutionHoursSum / float64(resolvedCount)
	}
	return stats
}

// SearchCases returns every stored case matching criteria, sorted by
// created_at descending with ties broken by case number ascending (§6).
func (c *AmlCore) SearchCases(criteria domain.CaseFilter) []*domain.Case {
	c.mu.RLock()
	matched := make([]*domain.Case, 0, len(c.cases))
	for _, cs := range c.cases {
		if caseMatches(cs, criteria) {
			matched = append(matched, cs)
		}
	}
	c.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Number < matched[j].Number
	})

	offset, limit := pageBounds(criteria.Offset, criteria.Limit, len(matched))
	return matched[offset:limit]
}

func caseMatches(cs *domain.Case, f domain.CaseFilter) bool {
	if f.Status != nil && cs.Status != *f.Status {
		return false
	}
	if f.Category != nil && cs.Category != *f.Category {
		return false
	}
	if f.Priority != nil && cs.Priority != *f.Priority {
		return false
	}
	if f.AssignedTo != nil && (cs.AssignedTo == nil || *cs.AssignedTo != *f.AssignedTo) {
		return false
	}
	return true
}

// GetCaseStatistics aggregates the current case population (§6).
func (c *AmlCore) GetCaseStatistics(now time.Time) domain.CaseStatistics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := domain.CaseStatistics{
		ByCategory: make(map[domain.CaseCategory]int),
		ByPriority: make(map[domain.CasePriority]int),
	}
	for _, cs := range c.cases {
		stats.ByCategory[cs.Category]++
		stats.ByPriority[cs.Priority]++
		if domain.IsClosedCaseStatus(cs.Status) {
			stats.TotalClosed++
		} else {
			stats.TotalOpen++
			if now.After(cs.DueDate) {
				stats.OverdueCount++
			}
		}
	}
	return stats
}

// Alert, Case, SAR, and MasterEntity lookups back the lifecycle commands
// exposed directly from the lifecycle/resolution packages; AmlCore holds
// the locking and storage, callers holding an *AmlCore apply lifecycle
// transitions against the value returned here under the same per-entity
// lock used to create it.

// GetAlert returns a stored alert by ID.
func (c *AmlCore) GetAlert(id uuid.UUID) (*domain.Alert, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.alerts[id]
	if !ok {
		return nil, errs.NotFound("alert not found")
	}
	return a, nil
}

// GetCase returns a stored case by ID.
func (c *AmlCore) GetCase(id uuid.UUID) (*domain.Case, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cs, ok := c.cases[id]
	if !ok {
		return nil, errs.NotFound("case not found")
	}
	return cs, nil
}

// PutCase creates or updates a case in the store.
func (c *AmlCore) PutCase(cs *domain.Case) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cases[cs.CaseID] = cs
}

// GetSAR returns a stored SAR by ID.
func (c *AmlCore) GetSAR(id uuid.UUID) (*domain.SAR, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sars[id]
	if !ok {
		return nil, errs.NotFound("SAR not found")
	}
	return s, nil
}

// PutSAR creates or updates a SAR in the store.
func (c *AmlCore) PutSAR(s *domain.SAR) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sars[s.SARID] = s
}

// PutMasterEntity registers a newly created master entity (e.g. the first
// source record of a kind, which has no candidates to merge into).
func (c *AmlCore) PutMasterEntity(e *domain.MasterEntity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities[e.EntityID] = e
}

// WithCustomerLock runs fn while holding the per-customer lock, the
// pattern every state-mutating command above follows internally (§5).
func (c *AmlCore) WithCustomerLock(customerID uuid.UUID, fn func() error) error {
	unlock := c.locks.LockMulti(customerID.String())
	defer unlock()
	return fn()
}

// EvaluateErasureRequest decides whether a GDPR right-to-erasure request
// (domain.GDPRRequestErasure) can proceed for a customer: it is rejected
// while any of that customer's alerts are still open, since the alert
// record and its underlying transactions are evidence an open AML
// investigation may still need. Returns the blocking alert IDs, empty when
// erasure can proceed.
func (c *AmlCore) EvaluateErasureRequest(customerID uuid.UUID) (canErase bool, blockingAlertIDs []uuid.UUID) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.alerts {
		if a.CustomerID == customerID && !domain.IsClosedAlertStatus(a.Status) {
			blockingAlertIDs = append(blockingAlertIDs, a.AlertID)
		}
	}
	return len(blockingAlertIDs) == 0, blockingAlertIDs
}
