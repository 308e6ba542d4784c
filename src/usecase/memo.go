// Package usecase is the write boundary of the memo registry: it validates
// incoming saves, orchestrates attachment encoding, gates destructive deletes
// behind a confirmation token, and exposes the read projections the view
// collaborators consume.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"memo-registry/src/attachment"
	"memo-registry/src/domain"
	"memo-registry/src/models"
	"memo-registry/src/query"
	"memo-registry/src/stats"
	"memo-registry/src/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownDepartment  = errors.New("department is not in the department set")
	ErrUnknownToken       = errors.New("unknown or already used confirmation token")
	ErrInvalidGranularity = errors.New("granularity must be day, month, or year")
)

// MemoUsecase defines the interface for memo business logic
type MemoUsecase interface {
	CreateMemo(ctx context.Context, req models.CreateMemoRequest, file *attachment.Input) (*domain.Memo, error)
	UpdateMemo(ctx context.Context, id string, req models.UpdateMemoRequest, file *attachment.Input) (*domain.Memo, error)
	RequestDelete(id string) (string, error)
	ConfirmDelete(token string) error
	ListMemos(filter domain.Filter, sort domain.Sort, page int) *models.MemoListResponse
	AddDepartment(name string) bool
	Departments() []string
	Teachers() []string
	DepartmentStats(filter domain.Filter) []stats.Series
	PeriodStats(granularity domain.Granularity) ([]stats.Series, error)
	Dashboard(filter domain.Filter) stats.Dashboard
	Busy() bool
}

type memoUsecase struct {
	memoRepo domain.MemoRepository
	validate *validator.CustomValidator
	logger   *logrus.Logger
	pageSize int

	saving atomic.Bool

	mu      sync.Mutex
	pending map[string]string
}

// NewMemoUsecase creates a new memo usecase
func NewMemoUsecase(memoRepo domain.MemoRepository, logger *logrus.Logger, pageSize int) MemoUsecase {
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &memoUsecase{
		memoRepo: memoRepo,
		validate: validator.NewCustomValidator(),
		logger:   logger,
		pageSize: pageSize,
		pending:  make(map[string]string),
	}
}

// CreateMemo validates the request, encodes the attachment when one is
// supplied, and appends the new memo. An encoding failure aborts the save
// with no partial record.
func (u *memoUsecase) CreateMemo(ctx context.Context, req models.CreateMemoRequest, file *attachment.Input) (*domain.Memo, error) {
	u.saving.Store(true)
	defer u.saving.Store(false)

	if err := u.validate.Validate(req); err != nil {
		return nil, err
	}
	if !u.departmentExists(req.Department) {
		return nil, ErrUnknownDepartment
	}

	memo := domain.Memo{
		MemoNumber: req.MemoNumber,
		Date:       req.Date,
		Teacher:    req.Teacher,
		Subject:    req.Subject,
		Department: req.Department,
	}

	if file != nil {
		att, err := u.encode(ctx, file)
		if err != nil {
			return nil, err
		}
		memo.FileData = att.Data
		memo.FileName = att.Name
		memo.FileType = att.Type
	}

	return u.memoRepo.Add(memo)
}

// UpdateMemo validates the request and replaces the matching memo. When no
// new file is supplied the previous attachment fields are carried forward
// unchanged, so editing a memo never drops its attachment.
func (u *memoUsecase) UpdateMemo(ctx context.Context, id string, req models.UpdateMemoRequest, file *attachment.Input) (*domain.Memo, error) {
	u.saving.Store(true)
	defer u.saving.Store(false)

	if err := u.validate.Validate(req); err != nil {
		return nil, err
	}
	if !u.departmentExists(req.Department) {
		return nil, ErrUnknownDepartment
	}

	existing, err := u.memoRepo.Get(id)
	if err != nil {
		return nil, err
	}

	memo := domain.Memo{
		ID:         existing.ID,
		MemoNumber: req.MemoNumber,
		Date:       req.Date,
		Teacher:    req.Teacher,
		Subject:    req.Subject,
		Department: req.Department,
		FileData:   existing.FileData,
		FileName:   existing.FileName,
		FileType:   existing.FileType,
	}

	if file != nil {
		att, err := u.encode(ctx, file)
		if err != nil {
			return nil, err
		}
		memo.FileData = att.Data
		memo.FileName = att.Name
		memo.FileType = att.Type
	}

	return u.memoRepo.Update(memo)
}

// RequestDelete opens the destructive-action gate: it hands back a single-use
// confirmation token without touching the collection.
func (u *memoUsecase) RequestDelete(id string) (string, error) {
	token := uuid.NewString()

	u.mu.Lock()
	u.pending[token] = id
	u.mu.Unlock()

	u.logger.WithField("memo_id", id).Debug("delete requested, awaiting confirmation")
	return token, nil
}

// ConfirmDelete consumes a confirmation token and performs the delete. The
// underlying delete is idempotent, but a token can only be spent once.
func (u *memoUsecase) ConfirmDelete(token string) error {
	u.mu.Lock()
	id, ok := u.pending[token]
	if ok {
		delete(u.pending, token)
	}
	u.mu.Unlock()

	if !ok {
		return ErrUnknownToken
	}
	return u.memoRepo.Delete(id)
}

// ListMemos runs the filter/sort/paginate pipeline over the current
// collection.
func (u *memoUsecase) ListMemos(filter domain.Filter, sortSpec domain.Sort, page int) *models.MemoListResponse {
	filtered := query.Apply(u.memoRepo.List(), filter)
	ordered := query.Order(filtered, sortSpec)
	visible, totalPages := query.Paginate(ordered, page, u.pageSize)

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return &models.MemoListResponse{
		Memos:      visible,
		Total:      len(filtered),
		Page:       page,
		Limit:      u.pageSize,
		TotalPages: totalPages,
	}
}

// AddDepartment adds a department name to the set
func (u *memoUsecase) AddDepartment(name string) bool {
	return u.memoRepo.AddDepartment(u.validate.SanitizeInput(name))
}

// Departments returns the current department set
func (u *memoUsecase) Departments() []string {
	return u.memoRepo.Departments()
}

// Teachers returns the distinct teacher names for the filter dropdown
func (u *memoUsecase) Teachers() []string {
	return u.memoRepo.Teachers()
}

// DepartmentStats counts the filtered memos per known department.
func (u *memoUsecase) DepartmentStats(filter domain.Filter) []stats.Series {
	filtered := query.Apply(u.memoRepo.List(), filter)
	return stats.ByDepartment(filtered, u.memoRepo.Departments())
}

// PeriodStats buckets all memos by the selected time granularity.
func (u *memoUsecase) PeriodStats(granularity domain.Granularity) ([]stats.Series, error) {
	if !granularity.IsValid() {
		return nil, ErrInvalidGranularity
	}
	return stats.ByPeriod(u.memoRepo.List(), granularity), nil
}

// Dashboard summarizes the filtered collection for the stat cards.
func (u *memoUsecase) Dashboard(filter domain.Filter) stats.Dashboard {
	filtered := query.Apply(u.memoRepo.List(), filter)
	return stats.Summarize(filtered, u.memoRepo.Departments())
}

// Busy reports whether a save, including its attachment encoding, is in
// flight. The UI collaborator disables concurrent edits while this is true.
func (u *memoUsecase) Busy() bool {
	return u.saving.Load()
}

func (u *memoUsecase) departmentExists(name string) bool {
	for _, dept := range u.memoRepo.Departments() {
		if dept == name {
			return true
		}
	}
	return false
}

// encode runs the one asynchronous, potentially failing step of a save. A
// cancelled context aborts before the read starts; a completed encoding
// always commits.
func (u *memoUsecase) encode(ctx context.Context, file *attachment.Input) (*attachment.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	att, err := attachment.Encode(file.Name, file.Reader)
	if err != nil {
		u.logger.WithError(err).WithField("file", file.Name).Error("attachment encoding failed")
		return nil, fmt.Errorf("failed to encode attachment: %w", err)
	}
	return att, nil
}
