package risk

import (
	"testing"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/refdata"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubCatalog struct{}

func (stubCatalog) ProductRisk(string) float64  { return 10 }
func (stubCatalog) ChannelRisk(string) float64  { return 10 }
func (stubCatalog) IndustryRisk(string) float64 { return 10 }

func testSnapshot() *refdata.Snapshot {
	return &refdata.Snapshot{
		CountryRisk: map[string]float64{"US": 20, "IR": 90},
	}
}

func TestScoreWeightsSumValidation(t *testing.T) {
	_, err := Score(uuid.New(), CustomerProfile{}, testSnapshot(), stubCatalog{}, map[domain.RiskCategory]float64{
		domain.RiskCategoryGeography: 0.5,
	})
	assert.Error(t, err)
}

func TestScoreSanctionsMatchRaisesCustomerCategory(t *testing.T) {
	profile := CustomerProfile{CountryOfResidence: "US", SanctionsMatch: true}
	result, err := Score(uuid.New(), profile, testSnapshot(), stubCatalog{}, nil)
	assert.NoError(t, err)

	var customerScore float64
	for _, cs := range result.CategoryScores {
		if cs.Category == domain.RiskCategoryCustomer {
			customerScore = cs.Score
		}
	}
	assert.Equal(t, 70.0, customerScore) // base 20 + 50 sanctions
}

func TestRiskScoreMonotonicityAddingPositiveFactorNeverDecreases(t *testing.T) {
	baseline := CustomerProfile{CountryOfResidence: "US"}
	elevated := baseline
	elevated.AdverseMedia = true

	base, err := Score(uuid.New(), baseline, testSnapshot(), stubCatalog{}, nil)
	assert.NoError(t, err)
	withFactor, err := Score(uuid.New(), elevated, testSnapshot(), stubCatalog{}, nil)
	assert.NoError(t, err)

	assert.GreaterOrEqual(t, withFactor.CompositeScore, base.CompositeScore)
}

func TestApproveOverrideAppliesOnceComplete(t *testing.T) {
	profile := &domain.CustomerRiskProfile{Level: domain.RiskLevelLow}
	override := RequestOverride(profile, uuid.New(), domain.RiskLevelVeryHigh, "elevated activity", "manual review", []domain.ApprovalRole{domain.ApprovalRoleReviewer, domain.ApprovalRoleOfficer})

	err := ApproveOverride(profile, &override, domain.ApprovalDecision{Role: domain.ApprovalRoleReviewer, Approved: true})
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLevelLow, profile.Level, "should not apply until all roles approve")

	err = ApproveOverride(profile, &override, domain.ApprovalDecision{Role: domain.ApprovalRoleOfficer, Approved: true})
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLevelVeryHigh, profile.Level)
	assert.True(t, profile.RequiresEDD, "low -> very_high is a 3-band jump and must raise EDD")
}
