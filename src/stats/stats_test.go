package stats_test

import (
	"testing"

	"memo-registry/src/domain"
	"memo-registry/src/query"
	"memo-registry/src/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dated(date, department string) domain.Memo {
	return domain.Memo{
		ID:         date + "/" + department,
		MemoNumber: "n",
		Date:       date,
		Teacher:    "t",
		Subject:    "s",
		Department: department,
	}
}

func TestByDepartment(t *testing.T) {
	departments := []string{"A", "B", "C"}
	memos := []domain.Memo{
		dated("2024-01-01", "A"),
		dated("2024-01-02", "A"),
		dated("2024-01-03", "C"),
		dated("2024-01-04", "Removed"), // stale department, counts nowhere
	}

	got := stats.ByDepartment(memos, departments)

	require.Len(t, got, 3, "every known department reports an entry")
	assert.Equal(t, stats.Series{Label: "A", Value: 2}, got[0])
	assert.Equal(t, stats.Series{Label: "B", Value: 0}, got[1], "zero is reported, not omitted")
	assert.Equal(t, stats.Series{Label: "C", Value: 1}, got[2])
}

// Filtering by a department and then aggregating must count exactly the
// filtered list for that department and zero for the rest.
func TestByDepartment_ConsistentWithFilter(t *testing.T) {
	departments := []string{"A", "B"}
	memos := []domain.Memo{
		dated("2024-01-01", "A"),
		dated("2024-01-02", "A"),
		dated("2024-01-03", "B"),
	}

	filtered := query.Apply(memos, domain.Filter{Department: "A"})
	got := stats.ByDepartment(filtered, departments)

	assert.Equal(t, len(filtered), got[0].Value)
	assert.Equal(t, 0, got[1].Value)
}

func TestByPeriod(t *testing.T) {
	memos := []domain.Memo{
		dated("2024-02-20", "A"),
		dated("2024-01-05", "A"),
		dated("2024-02-10", "A"),
		dated("2023-12-31", "B"),
	}

	tests := []struct {
		name        string
		granularity domain.Granularity
		expected    []stats.Series
	}{
		{
			name:        "month buckets in chronological order",
			granularity: domain.ByMonth,
			expected: []stats.Series{
				{Label: "2023-12", Value: 1},
				{Label: "2024-01", Value: 1},
				{Label: "2024-02", Value: 2},
			},
		},
		{
			name:        "day buckets",
			granularity: domain.ByDay,
			expected: []stats.Series{
				{Label: "2023-12-31", Value: 1},
				{Label: "2024-01-05", Value: 1},
				{Label: "2024-02-10", Value: 1},
				{Label: "2024-02-20", Value: 1},
			},
		},
		{
			name:        "year buckets",
			granularity: domain.ByYear,
			expected: []stats.Series{
				{Label: "2023", Value: 1},
				{Label: "2024", Value: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stats.ByPeriod(memos, tt.granularity))
		})
	}
}

func TestByPeriod_SkipsUnparseableDates(t *testing.T) {
	memos := []domain.Memo{
		dated("garbage", "A"),
		dated("2024-01-05", "A"),
	}

	got := stats.ByPeriod(memos, domain.ByYear)
	assert.Equal(t, []stats.Series{{Label: "2024", Value: 1}}, got)
}

func TestByPeriod_InvalidGranularity(t *testing.T) {
	memos := []domain.Memo{dated("2024-01-05", "A")}
	assert.Empty(t, stats.ByPeriod(memos, domain.Granularity("week")))
}

func TestSummarize(t *testing.T) {
	departments := []string{"A", "B"}
	memos := []domain.Memo{
		dated("2024-01-01", "A"),
		dated("2024-01-02", "B"),
		dated("2024-01-03", "B"),
	}

	got := stats.Summarize(memos, departments)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, []stats.Series{{Label: "A", Value: 1}, {Label: "B", Value: 2}}, got.ByDepartment)
}
