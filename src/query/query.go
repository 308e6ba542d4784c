// Package query implements the pure filter/sort/paginate pipeline over the
// memo collection. Functions here never mutate their input slice.
package query

import (
	"sort"
	"strings"
	"time"

	"memo-registry/src/domain"
)

// DefaultPageSize is the fixed page size the list view uses.
const DefaultPageSize = 10

// Run applies filter, sort and pagination in order and returns the visible
// page together with the total page count.
func Run(memos []domain.Memo, filter domain.Filter, sortSpec domain.Sort, page, pageSize int) ([]domain.Memo, int) {
	filtered := Apply(memos, filter)
	ordered := Order(filtered, sortSpec)
	return Paginate(ordered, page, pageSize)
}

// Apply returns the memos matching every active filter predicate. Absent
// filters impose no constraint.
func Apply(memos []domain.Memo, filter domain.Filter) []domain.Memo {
	start, hasStart := parseBound(filter.StartDate, false)
	end, hasEnd := parseBound(filter.EndDate, true)
	subject := strings.ToLower(filter.Subject)

	result := make([]domain.Memo, 0, len(memos))
	for _, memo := range memos {
		if subject != "" && !strings.Contains(strings.ToLower(memo.Subject), subject) {
			continue
		}
		if filter.Teacher != "" && memo.Teacher != filter.Teacher {
			continue
		}
		if filter.Department != "" && memo.Department != filter.Department {
			continue
		}
		if hasStart || hasEnd {
			date, err := memo.ParseDate()
			if err != nil {
				// An unreadable date cannot satisfy a range bound.
				continue
			}
			if hasStart && date.Before(start) {
				continue
			}
			if hasEnd && date.After(end) {
				continue
			}
		}
		result = append(result, memo)
	}
	return result
}

// Order returns a sorted copy of memos. Dates compare chronologically, text
// fields byte-wise; the sort is stable so ties keep their relative order. An
// invalid sort key leaves the order untouched.
func Order(memos []domain.Memo, sortSpec domain.Sort) []domain.Memo {
	result := make([]domain.Memo, len(memos))
	copy(result, memos)

	if !sortSpec.Key.IsValid() {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		cmp := compare(result[i], result[j], sortSpec.Key)
		if sortSpec.Order == domain.OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return result
}

// Paginate slices out the requested 1-based page and returns it with the
// total page count. The count is never below one and out-of-range pages clamp
// instead of erroring.
func Paginate(memos []domain.Memo, page, pageSize int) ([]domain.Memo, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(memos) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize
	if startIndex > len(memos) {
		startIndex = len(memos)
	}
	if endIndex > len(memos) {
		endIndex = len(memos)
	}

	result := make([]domain.Memo, endIndex-startIndex)
	copy(result, memos[startIndex:endIndex])
	return result, totalPages
}

// Next implements the header-click protocol: clicking the current sort key
// toggles its direction, selecting a new key resets to ascending.
func Next(current domain.Sort, key domain.SortKey) domain.Sort {
	order := domain.OrderAsc
	if current.Key == key && current.Order == domain.OrderAsc {
		order = domain.OrderDesc
	}
	return domain.Sort{Key: key, Order: order}
}

func compare(a, b domain.Memo, key domain.SortKey) int {
	if key == domain.SortByDate {
		dateA, errA := a.ParseDate()
		dateB, errB := b.ParseDate()
		if errA == nil && errB == nil {
			return dateA.Compare(dateB)
		}
	}
	return strings.Compare(field(a, key), field(b, key))
}

func field(m domain.Memo, key domain.SortKey) string {
	switch key {
	case domain.SortByMemoNumber:
		return m.MemoNumber
	case domain.SortByDate:
		return m.Date
	case domain.SortByTeacher:
		return m.Teacher
	case domain.SortBySubject:
		return m.Subject
	case domain.SortByDepartment:
		return m.Department
	default:
		return ""
	}
}

// parseBound parses a filter date bound. The start bound is the beginning of
// that calendar day and the end bound the last instant of it, so boundary
// dates match inclusively. An empty or unparseable bound is treated as absent.
func parseBound(value string, endOfDay bool) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return parsed, true
}
