package domain

import (
	"time"
)

// DateLayout is the calendar-date format memos are stored with.
const DateLayout = "2006-01-02"

// Memo represents one administrative record in the registry
type Memo struct {
	ID         string `json:"id"`
	MemoNumber string `json:"memoNumber"`
	Date       string `json:"date"`
	Teacher    string `json:"teacher"`
	Subject    string `json:"subject"`
	Department string `json:"department"`
	FileData   string `json:"fileData,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	FileType   string `json:"fileType,omitempty"`
}

// HasFile reports whether an attachment is present. The three file fields are
// always set or cleared together.
func (m Memo) HasFile() bool {
	return m.FileData != ""
}

// ParseDate parses the memo date. A memo saved through the write boundary
// always carries a valid date, but values restored from storage may not.
func (m Memo) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, m.Date)
}

// SeedDepartments returns the initial department set used when the store has
// no persisted value. The names match the original school-office deployment.
func SeedDepartments() []string {
	return []string{
		"งานบริหารวิชาการ",
		"งานบริหารงบประมาณ",
		"งานบริหารบุคลากร",
		"งานบริหารทั่วไป",
	}
}

// SortKey identifies a sortable memo field
type SortKey string

const (
	SortByMemoNumber SortKey = "memoNumber"
	SortByDate       SortKey = "date"
	SortByTeacher    SortKey = "teacher"
	SortBySubject    SortKey = "subject"
	SortByDepartment SortKey = "department"
)

// SortOrder represents a sort direction
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Sort combines a sort key with a direction
type Sort struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
}

// Filter represents filter criteria for memo queries. Zero values impose no
// constraint; Teacher and Department match exactly when set.
type Filter struct {
	Subject    string
	Teacher    string
	Department string
	StartDate  string
	EndDate    string
}

// Granularity selects the time bucket used by period aggregation
type Granularity string

const (
	ByDay   Granularity = "day"
	ByMonth Granularity = "month"
	ByYear  Granularity = "year"
)

// IsValid validates if the sort key is valid
func (k SortKey) IsValid() bool {
	switch k {
	case SortByMemoNumber, SortByDate, SortByTeacher, SortBySubject, SortByDepartment:
		return true
	default:
		return false
	}
}

// IsValid validates if the sort order is valid
func (o SortOrder) IsValid() bool {
	switch o {
	case OrderAsc, OrderDesc:
		return true
	default:
		return false
	}
}

// IsValid validates if the granularity is valid
func (g Granularity) IsValid() bool {
	switch g {
	case ByDay, ByMonth, ByYear:
		return true
	default:
		return false
	}
}

// String returns string representation of SortKey
func (k SortKey) String() string {
	return string(k)
}

// String returns string representation of SortOrder
func (o SortOrder) String() string {
	return string(o)
}
