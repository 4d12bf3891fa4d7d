package resolution

import (
	"testing"
	"time"

	"github.com/banking/aml-core/internal/domain"
	"github.com/banking/aml-core/internal/refdata"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAutoDecideSSNExactMerges(t *testing.T) {
	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := domain.MasterEntity{
		EntityID: uuid.New(),
		Kind:     domain.EntityKindIndividual,
		NameVariants: []domain.NameVariant{
			{Name: "Jane Doe", IsPrimary: true},
		},
		Identifiers: []domain.Identifier{
			{Type: domain.IdentifierTaxID, Value: "123-45-6789", IssuingCountry: "US"},
		},
		DateOfBirth:     &dob,
		SourceRecordIDs: []uuid.UUID{uuid.New()},
	}

	record := domain.SourceRecord{
		RecordID: uuid.New(),
		Kind:     domain.EntityKindIndividual,
		Names:    []domain.NameVariant{{Name: "Jane A Doe", IsPrimary: true}},
		Identifiers: []domain.Identifier{
			{Type: domain.IdentifierTaxID, Value: "123-45-6789", IssuingCountry: "US"},
		},
		DateOfBirth: &dob,
	}

	decision, err := AutoDecide(record, []domain.MasterEntity{existing}, refdata.DefaultResolutionRules())
	assert.NoError(t, err)
	assert.True(t, decision.AutoMerge)
	assert.Equal(t, "SSN_EXACT", decision.MatchedRule)
	assert.Equal(t, existing.EntityID, decision.MergeInto)
}

func TestMergeIdempotent(t *testing.T) {
	recordID := uuid.New()
	entity := domain.MasterEntity{
		EntityID:        uuid.New(),
		SourceRecordIDs: []uuid.UUID{uuid.New()},
		NameVariants:    []domain.NameVariant{{Name: "Jane Doe", IsPrimary: true}},
	}
	record := domain.SourceRecord{
		RecordID: recordID,
		Names:    []domain.NameVariant{{Name: "Jane Doe Smith"}},
	}

	Merge(&entity, record, uuid.New(), 0.99, "NAME_DOB")
	historyLen := len(entity.MergeHistory)

	Merge(&entity, record, uuid.New(), 0.99, "NAME_DOB")
	assert.Equal(t, historyLen, len(entity.MergeHistory), "second merge of the same record must be a no-op")
}

func TestQualityScoreAllFieldsPresent(t *testing.T) {
	dob := time.Now()
	entity := domain.MasterEntity{
		NameVariants:  []domain.NameVariant{{Name: "A", IsPrimary: true}},
		DateOfBirth:   &dob,
		Identifiers:   []domain.Identifier{{Type: domain.IdentifierTaxID, Value: "1"}},
		Addresses:     []domain.Address{{Street1: "Main St"}},
		Nationalities: []string{"US"},
	}
	assert.Equal(t, 100.0, QualityScore(entity))
}
