// Package refdata holds the read-mostly reference data consumed by
// screening, resolution, and risk scoring: country risk table, watchlists,
// resolution rules, and rule definitions. Updates publish a new immutable
// snapshot via atomic.Pointer; readers never block (spec.md §5).
package refdata

import (
	"sync/atomic"
	"time"

	"github.com/banking/aml-core/internal/domain"
)

// Snapshot is one immutable point-in-time view of all reference data.
type Snapshot struct {
	Version          string
	CountryRisk      map[string]float64 // ISO country code -> base risk score [0,100]
	HighRiskCountries map[string]bool
	Watchlists       map[domain.WatchlistType][]domain.WatchlistEntry
	ResolutionRules  []domain.ResolutionRule // evaluated in Priority order
	Rules            []domain.Rule           // active transaction rules
}

// Store holds the current Snapshot behind an atomic pointer.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore constructs a Store seeded with the given snapshot.
func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	s.snap.Store(initial)
	return s
}

// Current returns the currently published snapshot. Never blocks.
func (s *Store) Current() *Snapshot {
	return s.snap.Load()
}

// Publish atomically replaces the current snapshot. Callers typically
// build a new Snapshot from the old one plus a delta and publish it
// wholesale; there is no partial update.
func (s *Store) Publish(next *Snapshot) {
	s.snap.Store(next)
}

// CountryRiskScore looks up a country's base risk score, defaulting to 30
// for unknown countries (§4.6).
func (snap *Snapshot) CountryRiskScore(countryCode string) float64 {
	if score, ok := snap.CountryRisk[countryCode]; ok {
		return score
	}
	return 30
}

// IsHighRisk reports whether a country is in the configured high-risk set
// used by the geographic-anomaly rule evaluator (§4.4).
func (snap *Snapshot) IsHighRisk(countryCode string) bool {
	return snap.HighRiskCountries[countryCode]
}

// ActiveWatchlistEntries returns the entries of one watchlist.
func (snap *Snapshot) ActiveWatchlistEntries(kind domain.WatchlistType) []domain.WatchlistEntry {
	return snap.Watchlists[kind]
}

// RuleFor returns the active rule definition with the given ID, and false
// if none is active under that ID in this snapshot. Used to resolve rule
// version pins (§8 rule-version pinning invariant) without ever mutating a
// rule already referenced by a detected pattern.
func (snap *Snapshot) RuleFor(ruleID string) (domain.Rule, bool) {
	for _, r := range snap.Rules {
		if r.RuleID == ruleID && r.Active {
			return r, true
		}
	}
	return domain.Rule{}, false
}

// DefaultResolutionRules returns the built-in catalog of entity-resolution
// rules, matching the original implementation's defaults: SSN_EXACT,
// NAME_DOB, NAME_ADDR, COMPANY_REG, evaluated in ascending Priority.
func DefaultResolutionRules() []domain.ResolutionRule {
	return []domain.ResolutionRule{
		{
			RuleCode:           "SSN_EXACT",
			RuleName:           "Exact tax ID match",
			EntityKind:         domain.EntityKindIndividual,
			FieldWeights:       map[string]float64{"identifier": 1.0},
			Threshold:          1.0,
			AutoMergeThreshold: 1.0,
			AutoMergeEnabled:   true,
			Priority:           1,
			Active:             true,
		},
		{
			RuleCode:           "NAME_DOB",
			RuleName:           "Name and date of birth",
			EntityKind:         domain.EntityKindIndividual,
			FieldWeights:       map[string]float64{"name": 0.6, "dob": 0.4},
			Threshold:          0.85,
			AutoMergeThreshold: 0.98,
			AutoMergeEnabled:   true,
			Priority:           2,
			Active:             true,
		},
		{
			RuleCode:           "NAME_ADDR",
			RuleName:           "Name and address",
			EntityKind:         domain.EntityKindIndividual,
			FieldWeights:       map[string]float64{"name": 0.5, "address": 0.5},
			Threshold:          0.80,
			AutoMergeThreshold: 0.95,
			AutoMergeEnabled:   true,
			Priority:           3,
			Active:             true,
		},
		{
			RuleCode:           "COMPANY_REG",
			RuleName:           "Company registration identifier",
			EntityKind:         domain.EntityKindOrganization,
			FieldWeights:       map[string]float64{"name": 0.8, "identifier": 0.2},
			Threshold:          0.95,
			AutoMergeThreshold: 1.0,
			AutoMergeEnabled:   true,
			Priority:           1,
			Active:             true,
		},
	}
}

// Bootstrap returns the built-in starter Snapshot: country risk lifted from
// domain.HighRiskCountries, the default resolution rule catalog, and one
// default rule per native rule-engine evaluator. Only the structuring rule's
// parameters (threshold, min_count) use keys its evaluator reads; the
// velocity, rapid-movement, amount and dormant-activation rules carry
// domain.SuspiciousActivityThresholds values under keys their evaluators do
// not read, so those rules run at the evaluators' built-in defaults.
// Watchlists start empty and nothing in this module loads them (§4.2);
// production deployments publish a replacement Snapshot sourced from the
// reference-data tables instead of calling Bootstrap after startup.
func Bootstrap() *Snapshot {
	countryRisk := make(map[string]float64, len(domain.HighRiskCountries))
	highRisk := make(map[string]bool)
	for code, score := range domain.HighRiskCountries {
		countryRisk[code] = float64(score)
		if score >= 40 {
			highRisk[code] = true
		}
	}

	th := domain.SuspiciousActivityThresholds
	now := time.Unix(0, 0).UTC()
	rules := []domain.Rule{
		{RuleID: "default-structuring", Code: "STRUCT-DEFAULT", Name: "Structuring below reporting threshold",
			PatternType: domain.PatternStructuring, BaseSeverity: domain.SeverityHigh, Active: true, Version: 1,
			EffectiveFrom: now,
			Parameters:  map[string]float64{"threshold": float64(th.StructuringThreshold), "min_count": 3}},
		{RuleID: "default-velocity", Code: "VELOCITY-DEFAULT", Name: "Transaction velocity spike",
			PatternType: domain.PatternVelocitySpike, BaseSeverity: domain.SeverityMedium, Active: true, Version: 1,
			EffectiveFrom: now,
			Parameters:  map[string]float64{"count_per_hour": float64(th.VelocityCountPerHour)}},
		{RuleID: "default-rapid-movement", Code: "RAPID-MOVEMENT-DEFAULT", Name: "Rapid in-and-out movement",
			PatternType: domain.PatternRapidMovement, BaseSeverity: domain.SeverityHigh, Active: true, Version: 1,
			EffectiveFrom: now,
			Parameters:  map[string]float64{"window_hours": th.RapidSuccessionWindow.Hours(), "ratio_threshold": 0.9}},
		{RuleID: "default-geographic", Code: "GEO-DEFAULT", Name: "High-risk country counterparty",
			PatternType: domain.PatternGeographic, BaseSeverity: domain.SeverityMedium, Active: true, Version: 1,
			EffectiveFrom: now},
		{RuleID: "default-amount", Code: "AMOUNT-DEFAULT", Name: "Single transaction amount anomaly",
			PatternType: domain.PatternAmountAnomaly, BaseSeverity: domain.SeverityMedium, Active: true, Version: 1,
			EffectiveFrom: now,
			Parameters:  map[string]float64{"high_risk_score_threshold": float64(th.HighRiskScoreThreshold)}},
		{RuleID: "default-dormant-activation", Code: "DORMANT-ACTIVATION-DEFAULT", Name: "Dormant account reactivation",
			PatternType: domain.PatternDormantActivate, BaseSeverity: domain.SeverityLow, Active: true, Version: 1,
			EffectiveFrom: now,
			Parameters:  map[string]float64{"count": float64(th.RapidSuccessionCount), "window_minutes": th.RapidSuccessionWindow.Minutes()}},
	}

	return &Snapshot{
		Version:           "bootstrap",
		CountryRisk:       countryRisk,
		HighRiskCountries: highRisk,
		Watchlists:        map[domain.WatchlistType][]domain.WatchlistEntry{},
		ResolutionRules:   DefaultResolutionRules(),
		Rules:             rules,
	}
}
