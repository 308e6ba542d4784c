package domain_test

import (
	"testing"

	"memo-registry/src/domain"

	"github.com/stretchr/testify/assert"
)

func TestSortKey_IsValid(t *testing.T) {
	for _, key := range []domain.SortKey{
		domain.SortByMemoNumber,
		domain.SortByDate,
		domain.SortByTeacher,
		domain.SortBySubject,
		domain.SortByDepartment,
	} {
		assert.True(t, key.IsValid(), key.String())
	}
	assert.False(t, domain.SortKey("id").IsValid())
	assert.False(t, domain.SortKey("").IsValid())
}

func TestGranularity_IsValid(t *testing.T) {
	assert.True(t, domain.ByDay.IsValid())
	assert.True(t, domain.ByMonth.IsValid())
	assert.True(t, domain.ByYear.IsValid())
	assert.False(t, domain.Granularity("week").IsValid())
}

func TestMemo_HasFile(t *testing.T) {
	assert.False(t, domain.Memo{}.HasFile())
	assert.True(t, domain.Memo{FileData: "data:text/plain;base64,aGk="}.HasFile())
}

func TestMemo_ParseDate(t *testing.T) {
	date, err := domain.Memo{Date: "2024-02-10"}.ParseDate()
	assert.NoError(t, err)
	assert.Equal(t, 2024, date.Year())

	_, err = domain.Memo{Date: "10 Feb 2024"}.ParseDate()
	assert.Error(t, err)
}

func TestSeedDepartments(t *testing.T) {
	seeds := domain.SeedDepartments()
	assert.Len(t, seeds, 4)

	seen := make(map[string]bool)
	for _, dept := range seeds {
		assert.False(t, seen[dept], "seed names are unique")
		seen[dept] = true
	}
}
