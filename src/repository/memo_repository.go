// Package repository owns the canonical memo and department collections. It
// is the sole writer of the two persisted keys and rewrites each collection
// wholesale on every mutation.
package repository

import (
	"sync"

	"memo-registry/src/domain"
	"memo-registry/src/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	memosKey       = "memos"
	departmentsKey = "departments"
)

// MemoRepository represents the memo repository
type MemoRepository struct {
	store  *store.Store
	logger *logrus.Logger

	mu          sync.RWMutex
	memos       []domain.Memo
	departments []string
}

// NewMemoRepository loads both collections from the store and returns a ready
// repository. A missing or corrupted snapshot falls back to an empty memo
// list and the seeded department set.
func NewMemoRepository(st *store.Store, logger *logrus.Logger) *MemoRepository {
	memos := store.Get(st, memosKey, []domain.Memo{})
	departments := store.Get(st, departmentsKey, domain.SeedDepartments())

	logger.WithFields(logrus.Fields{
		"memos":       len(memos),
		"departments": len(departments),
	}).Info("memo repository loaded")

	return &MemoRepository{
		store:       st,
		logger:      logger,
		memos:       memos,
		departments: departments,
	}
}

// List returns a copy of the full memo collection.
func (r *MemoRepository) List() []domain.Memo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Memo, len(r.memos))
	copy(out, r.memos)
	return out
}

// Get retrieves a memo by ID
func (r *MemoRepository) Get(id string) (*domain.Memo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, memo := range r.memos {
		if memo.ID == id {
			found := memo
			return &found, nil
		}
	}
	return nil, domain.ErrMemoNotFound
}

// Add appends a new memo with a freshly minted id and persists the updated
// collection.
func (r *MemoRepository) Add(memo domain.Memo) (*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	memo.ID = uuid.NewString()

	next := make([]domain.Memo, len(r.memos), len(r.memos)+1)
	copy(next, r.memos)
	next = append(next, memo)
	r.memos = next
	r.persistMemos()

	r.logger.WithField("memo_id", memo.ID).Info("memo created")
	return &memo, nil
}

// Update replaces the matching-id entry and persists. Updating an id that is
// not in the collection is an error.
func (r *MemoRepository) Update(memo domain.Memo) (*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := -1
	for i := range r.memos {
		if r.memos[i].ID == memo.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, domain.ErrMemoNotFound
	}

	next := make([]domain.Memo, len(r.memos))
	copy(next, r.memos)
	next[index] = memo
	r.memos = next
	r.persistMemos()

	r.logger.WithField("memo_id", memo.ID).Info("memo updated")
	return &memo, nil
}

// Delete removes the matching entry if present. Deleting an id that does not
// exist leaves the collection unchanged and is not an error.
func (r *MemoRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.Memo, 0, len(r.memos))
	for _, memo := range r.memos {
		if memo.ID != id {
			next = append(next, memo)
		}
	}
	if len(next) == len(r.memos) {
		return nil
	}
	r.memos = next
	r.persistMemos()

	r.logger.WithField("memo_id", id).Info("memo deleted")
	return nil
}

// Departments returns a copy of the department name list.
func (r *MemoRepository) Departments() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.departments))
	copy(out, r.departments)
	return out
}

// AddDepartment appends a department name and persists. Empty or duplicate
// names are ignored; the return value reports whether the set changed.
func (r *MemoRepository) AddDepartment(name string) bool {
	if name == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, dept := range r.departments {
		if dept == name {
			return false
		}
	}

	next := make([]string, len(r.departments), len(r.departments)+1)
	copy(next, r.departments)
	next = append(next, name)
	r.departments = next

	if err := r.store.Set(departmentsKey, r.departments); err != nil {
		r.logger.WithError(err).Warn("department snapshot not persisted, in-memory state remains authoritative")
	}

	r.logger.WithField("department", name).Info("department added")
	return true
}

// Teachers returns the distinct teacher names across all memos in first-seen
// order, for the filter dropdown collaborator.
func (r *MemoRepository) Teachers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.memos))
	var out []string
	for _, memo := range r.memos {
		if !seen[memo.Teacher] {
			seen[memo.Teacher] = true
			out = append(out, memo.Teacher)
		}
	}
	return out
}

// persistMemos rewrites the whole memo snapshot. A storage failure is logged
// by the store and downgraded here; the in-memory collection stays the source
// of truth for the session.
func (r *MemoRepository) persistMemos() {
	if err := r.store.Set(memosKey, r.memos); err != nil {
		r.logger.WithError(err).Warn("memo snapshot not persisted, in-memory state remains authoritative")
	}
}
