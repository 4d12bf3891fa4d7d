package matching

import (
	"testing"

	"github.com/banking/aml-core/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNameSimilarityExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("John Smith", "john smith"))
}

func TestNameSimilarityDisjoint(t *testing.T) {
	assert.Equal(t, 0.0, NameSimilarity("John Smith", "Maria Garcia"))
}

func TestNameSimilaritySymmetric(t *testing.T) {
	a, b := "John Michael Smith", "Michael Smith"
	assert.Equal(t, NameSimilarity(a, b), NameSimilarity(b, a))
}

func TestNameSimilarityPartialOverlap(t *testing.T) {
	score := NameSimilarity("John Smith", "John Smithson")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}

func TestAddressSimilarityAveragesPresentFields(t *testing.T) {
	a := domain.Address{Country: "US", City: "New York", PostalCode: "10001", Street1: "5th Ave"}
	b := domain.Address{Country: "US", City: "New York", PostalCode: "10002"}
	score := AddressSimilarity(a, b)
	assert.InDelta(t, 2.0/3.0, score, 0.001)
}

func TestAddressSimilarityNoSharedFields(t *testing.T) {
	assert.Equal(t, 0.0, AddressSimilarity(domain.Address{}, domain.Address{}))
}

func TestIdentifierMatchCaseInsensitive(t *testing.T) {
	a := domain.Identifier{Type: domain.IdentifierTaxID, Value: "abc123", IssuingCountry: "us"}
	b := domain.Identifier{Type: domain.IdentifierTaxID, Value: "ABC123", IssuingCountry: "US"}
	assert.True(t, IdentifierMatch(a, b))
}

func TestIdentifierMatchDifferentType(t *testing.T) {
	a := domain.Identifier{Type: domain.IdentifierTaxID, Value: "123", IssuingCountry: "US"}
	b := domain.Identifier{Type: domain.IdentifierPassport, Value: "123", IssuingCountry: "US"}
	assert.False(t, IdentifierMatch(a, b))
}
