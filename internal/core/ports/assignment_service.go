package ports

import (
	"context"
	"time"
)

// CreateAssignmentInput carries all data needed to open an assignment.
// A nil UserID records a shared ("Team/Room") assignment. A non-nil
// ReturnedDate imports an already-closed historical record; it does not
// touch the asset's status since there was no active state to close.
type CreateAssignmentInput struct {
	AssetID      string
	UserID       *string
	AssignedDate *time.Time // nil defaults to today
	ReturnedDate *time.Time
	Location     string
	Reason       string
	Notes        string
}

// UpdateAssignmentInput carries the writable field set for an existing
// assignment. Nil pointers leave the field unchanged. AssetID, UserID,
// AssignedDate and Reason are immutable after creation.
type UpdateAssignmentInput struct {
	ID           string
	ReturnedDate *time.Time
	Location     *string
	Notes        *string
}

// AssignmentDetail is the full assignment view.
type AssignmentDetail struct {
	ID           string
	AssetID      string
	UserID       *string
	AssignedDate time.Time
	ReturnedDate *time.Time
	Location     string
	Reason       string
	Notes        string
	Active       bool
}

// ListAssignmentsInput carries all parameters for the assignment list endpoint.
type ListAssignmentsInput struct {
	Status       string // "", "active" or "returned"
	Locations    []string
	AssignedFrom time.Time
	AssignedTo   time.Time
	ReturnedFrom time.Time
	ReturnedTo   time.Time
	SortBy       string
	SortDesc     bool
	Page         int
	Limit        int
}

// ListAssignmentsResult is returned by ListAssignments.
type ListAssignmentsResult struct {
	Items      []AssignmentDetail
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AssignmentService defines use-case operations for assignments, including
// the one-way active→returned transition and its asset side effect.
type AssignmentService interface {
	CreateAssignment(ctx context.Context, input CreateAssignmentInput) (*AssignmentDetail, error)
	GetAssignment(ctx context.Context, id string) (*AssignmentDetail, error)
	UpdateAssignment(ctx context.Context, input UpdateAssignmentInput) (*AssignmentDetail, error)
	ListAssignments(ctx context.Context, input ListAssignmentsInput) (*ListAssignmentsResult, error)
}
