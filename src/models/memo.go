package models

import (
	"memo-registry/src/domain"
)

// CreateMemoRequest represents the input for creating a memo. Every field is
// required at the write boundary.
type CreateMemoRequest struct {
	MemoNumber string `json:"memoNumber" validate:"required,safe_text"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Teacher    string `json:"teacher" validate:"required,safe_text"`
	Subject    string `json:"subject" validate:"required,safe_text"`
	Department string `json:"department" validate:"required"`
}

// UpdateMemoRequest represents the input for updating a memo. Updates replace
// every field, so the same required rules apply; the file attachment is
// carried over from the previous version when no new file is supplied.
type UpdateMemoRequest struct {
	MemoNumber string `json:"memoNumber" validate:"required,safe_text"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Teacher    string `json:"teacher" validate:"required,safe_text"`
	Subject    string `json:"subject" validate:"required,safe_text"`
	Department string `json:"department" validate:"required"`
}

// MemoListResponse represents the response for the memo list view
type MemoListResponse struct {
	Memos      []domain.Memo `json:"memos"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}
