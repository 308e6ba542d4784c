package domain

import "errors"

var (
	// ErrMemoNotFound is returned when no memo matches the requested id.
	ErrMemoNotFound = errors.New("memo not found")
)

// MemoRepository defines the interface for memo data access
type MemoRepository interface {
	List() []Memo
	Get(id string) (*Memo, error)
	Add(memo Memo) (*Memo, error)
	Update(memo Memo) (*Memo, error)
	Delete(id string) error
	Departments() []string
	AddDepartment(name string) bool
	Teachers() []string
}
