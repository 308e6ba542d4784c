// Package stats computes the aggregate projections the dashboard and charts
// consume. Output is plain label/value series; rendering is the charting
// collaborator's responsibility.
package stats

import (
	"sort"
	"time"

	"memo-registry/src/domain"
)

// Series is one label/value pair of an aggregate result
type Series struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Dashboard summarizes a (possibly filtered) memo list for the stat cards
type Dashboard struct {
	Total        int      `json:"total"`
	ByDepartment []Series `json:"byDepartment"`
}

// ByDepartment counts memos per known department. Every department reports an
// entry, zero included, in the order the department list defines. Memos whose
// department is no longer in the set contribute to no entry.
func ByDepartment(memos []domain.Memo, departments []string) []Series {
	counts := make(map[string]int, len(departments))
	for _, dept := range departments {
		counts[dept] = 0
	}
	for _, memo := range memos {
		if _, ok := counts[memo.Department]; ok {
			counts[memo.Department]++
		}
	}

	result := make([]Series, 0, len(departments))
	for _, dept := range departments {
		result = append(result, Series{Label: dept, Value: counts[dept]})
	}
	return result
}

// ByPeriod groups memos into calendar buckets under the selected granularity.
// Buckets appear in chronological order of first occurrence after sorting the
// source by date ascending; memos with an unparseable date are excluded.
func ByPeriod(memos []domain.Memo, granularity domain.Granularity) []Series {
	parsed := make([]time.Time, 0, len(memos))
	for _, memo := range memos {
		date, err := memo.ParseDate()
		if err != nil {
			continue
		}
		parsed = append(parsed, date)
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Before(parsed[j])
	})

	counts := make(map[string]int)
	var order []string
	for _, date := range parsed {
		key := bucketKey(date, granularity)
		if key == "" {
			continue
		}
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}

	result := make([]Series, 0, len(order))
	for _, key := range order {
		result = append(result, Series{Label: key, Value: counts[key]})
	}
	return result
}

// Summarize builds the dashboard projection over the given memo list.
func Summarize(memos []domain.Memo, departments []string) Dashboard {
	return Dashboard{
		Total:        len(memos),
		ByDepartment: ByDepartment(memos, departments),
	}
}

func bucketKey(date time.Time, granularity domain.Granularity) string {
	switch granularity {
	case domain.ByDay:
		return date.Format("2006-01-02")
	case domain.ByMonth:
		return date.Format("2006-01")
	case domain.ByYear:
		return date.Format("2006")
	default:
		return ""
	}
}
