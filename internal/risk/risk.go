// Package risk implements the composite customer risk scorer and the
// override workflow (spec.md §4.6).
package risk

import (
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/errs"
	"github.com/banking/aml-core/internal/refdata"
	"github.com/google/uuid"
)

// CustomerProfile is the raw inputs the category computations read; the
// caller assembles it from the customer record, open alerts/cases, and
// prior SAR count.
type CustomerProfile struct {
	CountryOfResidence  string
	CountriesOfOperation []string
	IsPEPDirect         bool
	IsPEPFamilyOrAssociate bool
	SanctionsMatch      bool
	AdverseMedia        bool
	HighRiskCustomerType bool // trust, financial_institution

	VelocityScore           float64
	ConsistencyScore        float64
	HighRiskCountryExposure float64
	OpenAlertCount          int
	OpenCaseCount           int
	PriorSARCount           int

	Product  string
	Channel  string
	Industry string
}

// FromKYCProfile seeds the customer-inherent fields of a CustomerProfile
// from the onboarding KYC record, leaving the caller to fill in the
// behavioral/transactional fields (velocity, alert/case counts, SAR
// history) that KYC data doesn't carry.
func FromKYCProfile(k *domain.CustomerKYCProfile) CustomerProfile {
	return CustomerProfile{
		CountryOfResidence:   k.CountryOfResidence,
		IsPEPDirect:          k.IsPEP,
		SanctionsMatch:       k.IsOnWatchlist,
		HighRiskCustomerType: k.RiskLevel == domain.RiskLevelHigh,
	}
}

// CatalogLookup resolves table-driven product/channel/industry risk
// scores; implementations are backed by configured high/medium-risk
// catalogs.
type CatalogLookup interface {
	ProductRisk(product string) float64
	ChannelRisk(channel string) float64
	IndustryRisk(industry string) float64
}

// StaticCatalog is the default CatalogLookup, a fixed three-tier table
// matching the original service's product/channel/industry risk buckets.
type StaticCatalog struct {
	HighRiskProducts    map[string]bool
	MediumRiskProducts  map[string]bool
	HighRiskChannels    map[string]bool
	MediumRiskChannels  map[string]bool
	HighRiskIndustries  map[string]bool
	MediumRiskIndustries map[string]bool
}

// DefaultCatalog returns the built-in product/channel/industry tables.
func DefaultCatalog() *StaticCatalog {
	return &StaticCatalog{
		HighRiskProducts:   set("wire_transfer", "correspondent_banking", "trade_finance"),
		MediumRiskProducts: set("investment", "foreign_exchange", "credit_card"),
		HighRiskChannels:   set("non_face_to_face", "third_party", "agent"),
		MediumRiskChannels: set("online", "mobile"),
		HighRiskIndustries: set("casino", "gambling", "money_service_business", "crypto",
			"precious_metals", "arms_dealer", "adult_entertainment"),
		MediumRiskIndustries: set("real_estate", "legal_services", "accounting", "art_dealer"),
	}
}

func set(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

func (c *StaticCatalog) ProductRisk(product string) float64 {
	switch {
	case c.HighRiskProducts[product]:
		return 70
	case c.MediumRiskProducts[product]:
		return 45
	default:
		return 20
	}
}

func (c *StaticCatalog) ChannelRisk(channel string) float64 {
	switch {
	case c.HighRiskChannels[channel]:
		return 65
	case c.MediumRiskChannels[channel]:
		return 40
	default:
		return 20
	}
}

func (c *StaticCatalog) IndustryRisk(industry string) float64 {
	switch {
	case c.HighRiskIndustries[industry]:
		return 80
	case c.MediumRiskIndustries[industry]:
		return 50
	default:
		return 25
	}
}

func clip(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func geographyScore(profile CustomerProfile, snap *refdata.Snapshot) float64 {
	base := snap.CountryRiskScore(profile.CountryOfResidence)
	for _, c := range profile.CountriesOfOperation {
		opScore := snap.CountryRiskScore(c)
		if candidate := 0.8 * opScore; candidate > base {
			base = candidate
		}
	}
	return clip(base)
}

func customerScore(profile CustomerProfile) float64 {
	score := 20.0
	if profile.IsPEPDirect {
		score += 40
	}
	if profile.IsPEPFamilyOrAssociate {
		score += 25
	}
	if profile.SanctionsMatch {
		score += 50
	}
	if profile.AdverseMedia {
		score += 20
	}
	if profile.HighRiskCustomerType {
		score += 15
	}
	return clip(score)
}

func transactionScore(profile CustomerProfile) float64 {
	score := 20.0
	if profile.VelocityScore > 70 {
		score += 20
	}
	if profile.ConsistencyScore < 30 {
		score += 15
	}
	if profile.HighRiskCountryExposure > 0.2 {
		score += 25
	}
	score += 5 * float64(profile.OpenAlertCount)
	score += 10 * float64(profile.OpenCaseCount)
	score += 15 * float64(profile.PriorSARCount)
	return clip(score)
}

// Score computes the weighted CustomerRiskProfile for a customer (§4.6).
// Returns an Invalid error, and no profile, if the configured category
// weights do not sum to 1.0 (within 0.001). Nil weights select
// domain.DefaultCategoryWeights.
func Score(customerID uuid.UUID, profile CustomerProfile, snap *refdata.Snapshot, catalog CatalogLookup, weights map[domain.RiskCategory]float64) (*domain.CustomerRiskProfile, error) {
	if weights == nil {
		weights = domain.DefaultCategoryWeights()
	}
	var weightSum float64
	for _, w := range weights {
		weightSum += w
	}
	if weightSum < 0.999 || weightSum > 1.001 {
		return nil, errs.Invalid("risk category weights must sum to 1.0")
	}

	raw := map[domain.RiskCategory]float64{
		domain.RiskCategoryGeography:   geographyScore(profile, snap),
		domain.RiskCategoryProduct:     catalog.ProductRisk(profile.Product),
		domain.RiskCategoryChannel:     catalog.ChannelRisk(profile.Channel),
		domain.RiskCategoryCustomer:    customerScore(profile),
		domain.RiskCategoryTransaction: transactionScore(profile),
		domain.RiskCategoryIndustry:    catalog.IndustryRisk(profile.Industry),
	}

	var composite float64
	categoryScores := make([]domain.CategoryScore, 0, len(raw))
	for category, score := range raw {
		weight := weights[category]
		composite += clip(score) * weight
		categoryScores = append(categoryScores, domain.CategoryScore{
			Category: category,
			Score:    clip(score),
			Weight:   weight,
		})
	}
	composite = clip(composite)
	level := domain.RiskLevelForScore(composite)
	now := time.Now()

	return &domain.CustomerRiskProfile{
		ProfileID:      uuid.New(),
		CustomerID:     customerID,
		CategoryScores: categoryScores,
		CompositeScore: composite,
		Level:          level,
		LastScoredAt:   now,
		NextReviewDue:  now.Add(domain.ReviewIntervalForLevel(level)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// RequestOverride creates a pending OverrideRequest requiring the given
// approver roles (§4.6).
func RequestOverride(profile *domain.CustomerRiskProfile, requestedBy uuid.UUID, requestedLevel domain.RiskLevel, reason, justification string, requiredRoles []domain.ApprovalRole) domain.OverrideRequest {
	return domain.OverrideRequest{
		OverrideID:     uuid.New(),
		RequestedBy:    requestedBy,
		CurrentLevel:   profile.Level,
		RequestedLevel: requestedLevel,
		Reason:         reason,
		Justification:  justification,
		Approvals:      &domain.ApprovalSet{Required: requiredRoles},
		CreatedAt:      time.Now(),
	}
}

// ApproveOverride records one role's decision; once every required role has
// approved, the profile's level is applied and requires_edd is auto-raised
// if the level moved upward by >= 2 bands (§4.6).
func ApproveOverride(profile *domain.CustomerRiskProfile, override *domain.OverrideRequest, decision domain.ApprovalDecision) error {
	if override.Approvals == nil {
		return errs.Invalid("override has no approval set configured")
	}
	override.Approvals.Decisions = append(override.Approvals.Decisions, decision)

	if override.Approvals.IsRejected() {
		return nil
	}
	if !override.Approvals.IsComplete() {
		return nil
	}

	now := time.Now()
	override.AppliedAt = &now
	if domain.LevelsApart(profile.Level, override.RequestedLevel) >= 2 {
		profile.RequiresEDD = true
	}
	profile.Level = override.RequestedLevel
	profile.UpdatedAt = now
	return nil
}
