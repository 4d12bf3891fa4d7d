package core

import (
	"context"
	"testing"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/jobs"
	"github.com/banking/aml-core/internal/metrics"
	"github.com/banking/aml-core/internal/numbering"
	"github.com/banking/aml-core/internal/refdata"
	"github.com/banking/aml-core/internal/risk"
	"github.com/banking/aml-core/internal/screening"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubCatalog struct{}

func (stubCatalog) ProductRisk(string) float64  { return 10 }
func (stubCatalog) ChannelRisk(string) float64  { return 10 }
func (stubCatalog) IndustryRisk(string) float64 { return 10 }

func newTestCore() *AmlCore {
	snap := refdata.NewStore(&refdata.Snapshot{
		Version:     "v1",
		CountryRisk: map[string]float64{"US": 20, "IR": 90},
		Watchlists: map[domain.WatchlistType][]domain.WatchlistEntry{
			domain.WatchlistOFACSDN: {
				{EntryID: "OFAC-1", Watchlist: domain.WatchlistOFACSDN, Name: "John Smith", Country: "IR"},
			},
		},
		Rules: []domain.Rule{
			{RuleID: "r1", Code: "STRUCT-1", PatternType: domain.PatternStructuring, Active: true, BaseSeverity: domain.SeverityHigh, Parameters: map[string]float64{"threshold": 1000000, "min_count": 3}},
		},
		ResolutionRules: refdata.DefaultResolutionRules(),
	})
	return New(snap, numbering.NewMemoryGenerator(), metrics.NewRegistry(), jobs.NewPool(2), stubCatalog{})
}

func TestScreenEntityFindsWatchlistHit(t *testing.T) {
	c := newTestCore()
	subjectID := uuid.New()
	c.PutMasterEntity(&domain.MasterEntity{EntityID: subjectID, Kind: domain.EntityKindIndividual, PrimaryName: "John Smith"})

	res, alerts := c.ScreenEntity(context.Background(), screening.Request{
		Subject: screening.Subject{EntityID: subjectID, PrimaryName: "John Smith"},
		Lists:   []domain.WatchlistType{domain.WatchlistOFACSDN},
	})
	assert.Len(t, res.Hits, 1)
	assert.Equal(t, "OFAC-1", res.Hits[0].WatchlistEntryID)
	assert.Len(t, alerts, 1)
	assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)

	assert.True(t, c.entities[subjectID].SanctionsMatch)
}

func TestScoreRiskStoresProfile(t *testing.T) {
	c := newTestCore()
	profile, err := c.ScoreRisk(uuid.New(), risk.CustomerProfile{CountryOfResidence: "US"}, nil)
	assert.NoError(t, err)
	assert.NotZero(t, profile.CompositeScore)
}

func TestScoreRiskFromKYCAppliesPEPAndWatchlistFlags(t *testing.T) {
	c := newTestCore()
	kyc := &domain.CustomerKYCProfile{
		CountryOfResidence: "IR",
		IsPEP:              true,
		IsOnWatchlist:      true,
		RiskLevel:          domain.RiskLevelHigh,
	}
	profile, err := c.ScoreRiskFromKYC(uuid.New(), kyc, risk.CustomerProfile{OpenAlertCount: 1}, nil)
	assert.NoError(t, err)
	assert.NotZero(t, profile.CompositeScore)
}

func TestCreateWorkflowAndOverdueSweep(t *testing.T) {
	c := newTestCore()
	inst, err := c.CreateWorkflow(domain.WorkflowAlertTriage, uuid.New(), time.Now().Add(-time.Hour))
	assert.NoError(t, err)
	assert.NotNil(t, inst)

	overdue := c.OverdueWorkflows(time.Now())
	assert.Len(t, overdue, 1)

	inst.Cancel()
	assert.Empty(t, c.OverdueWorkflows(time.Now()))
}

func TestResolveEntityFirstRecordHasNoCandidates(t *testing.T) {
	c := newTestCore()
	record := domain.SourceRecord{
		RecordID:     uuid.New(),
		SourceSystem: "core-banking",
		Kind:         domain.EntityKindIndividual,
		Names:        []domain.NameVariant{{Name: "Jane Doe", Type: domain.NameVariantLegal, IsPrimary: true}},
	}
	decision, entity, err := c.ResolveEntity(record, uuid.New())
	assert.NoError(t, err)
	assert.False(t, decision.AutoMerge)
	assert.Nil(t, entity)
}

func TestEvaluateErasureRequestBlockedByOpenAlert(t *testing.T) {
	c := newTestCore()
	customerID := uuid.New()
	c.PutCase(&domain.Case{CaseID: uuid.New()}) // unrelated, just exercises PutCase
	c.mu.Lock()
	c.alerts[uuid.New()] = &domain.Alert{AlertID: uuid.New(), CustomerID: customerID, Status: domain.AlertNew}
	c.mu.Unlock()

	canErase, blocking := c.EvaluateErasureRequest(customerID)
	assert.False(t, canErase)
	assert.Len(t, blocking, 1)

	canErase, blocking = c.EvaluateErasureRequest(uuid.New())
	assert.True(t, canErase)
	assert.Empty(t, blocking)
}

func TestReviewCandidateApprovesAndRejects(t *testing.T) {
	c := newTestCore()
	entity := &domain.MasterEntity{EntityID: uuid.New(), Kind: domain.EntityKindIndividual, PrimaryName: "Jane Doe"}
	c.PutMasterEntity(entity)

	record := domain.SourceRecord{
		RecordID:     uuid.New(),
		SourceSystem: "core-banking",
		Kind:         domain.EntityKindIndividual,
		Names:        []domain.NameVariant{{Name: "Jane Doe", Type: domain.NameVariantLegal, IsPrimary: true}},
	}
	candidateID := uuid.New()
	c.mu.Lock()
	c.candidates[candidateID] = &domain.MatchCandidate{
		CandidateID:    candidateID,
		SourceRecordID: record.RecordID,
		MasterEntityID: entity.EntityID,
		Overall:        0.9,
		RuleCode:       "NAME_DOB",
		Status:         domain.CandidatePending,
	}
	c.candidateRecords[candidateID] = record
	c.mu.Unlock()

	reviewer := uuid.New()
	candidate, merged, err := c.ReviewCandidate(candidateID, reviewer, true)
	assert.NoError(t, err)
	assert.Equal(t, domain.CandidateAccepted, candidate.Status)
	assert.NotNil(t, merged)
	assert.Contains(t, merged.SourceRecordIDs, record.RecordID)

	_, _, err = c.ReviewCandidate(candidateID, reviewer, true)
	assert.Error(t, err)
}

func TestSearchAlertsAndStatistics(t *testing.T) {
	c := newTestCore()
	customerID := uuid.New()
	now := time.Now()
	c.mu.Lock()
	c.alerts[uuid.New()] = &domain.Alert{AlertID: uuid.New(), Number: "ALT-1", CustomerID: customerID, Status: domain.AlertNew, Severity: domain.SeverityHigh, CreatedAt: now, DueDate: now.Add(time.Hour)}
	c.alerts[uuid.New()] = &domain.Alert{AlertID: uuid.New(), Number: "ALT-2", CustomerID: uuid.New(), Status: domain.AlertClosedFalsePositive, Severity: domain.SeverityLow, CreatedAt: now, DueDate: now.Add(time.Hour)}
	c.mu.Unlock()

	page := c.SearchAlerts(domain.AlertFilter{CustomerID: &customerID})
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "ALT-1", page.Items[0].Number)

	stats := c.GetStatistics(now)
	assert.Equal(t, 1, stats.TotalOpen)
	assert.Equal(t, 1, stats.TotalClosed)
}

func TestMonitorTransactionOpensAlertForStructuring(t *testing.T) {
	c := newTestCore()
	tx := domain.Transaction{
		TransactionID:   uuid.New(),
		Amount:          domain.Money{Amount: 900000, Currency: "USD"},
		Direction:       domain.DirectionCredit,
		CustomerID:      uuid.New(),
		SourceAccountID: uuid.New(),
		IsCash:          true,
		Timestamp:       time.Now(),
	}
	custCtx := domain.CustomerContext{RecentBelowThresholdCount: 5}

	alerts, err := c.MonitorTransaction(context.Background(), tx, custCtx)
	assert.NoError(t, err)
	// $9,000 lies in [0.8*T, T) for T = $10,000 and 5 recent below-threshold
	// deposits meet min_count-1, so the structuring rule fires once.
	assert.Len(t, alerts, 1)
}
