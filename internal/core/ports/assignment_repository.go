package ports

import (
	"context"
	"time"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// Derived assignment status filter values.
const (
	AssignmentStatusActive   = "active"
	AssignmentStatusReturned = "returned"
)

// ListAssignmentsFilter carries all query parameters for listing assignments.
type ListAssignmentsFilter struct {
	Status       string // "", "active" (returned_date null) or "returned"
	Locations    []string
	AssignedFrom time.Time
	AssignedTo   time.Time
	ReturnedFrom time.Time
	ReturnedTo   time.Time
	SortBy       string // declared field name; unknown falls back to "assigned_date"
	SortDesc     bool
	Page         int
	Limit        int
}

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) error
	FindByID(ctx context.Context, id string) (*domain.Assignment, error)
	// Update persists an assignment without touching its asset. Used for
	// edits that do not cross the active→returned edge.
	Update(ctx context.Context, a *domain.Assignment) error
	// CloseWithAsset persists the returned assignment and sets its asset's
	// status in a single transaction. Called exactly on the active→returned
	// transition edge.
	CloseWithAsset(ctx context.Context, a *domain.Assignment, status domain.AssetStatus) error
	// FindActiveByAsset returns the asset's active assignment, or
	// domain.ErrAssignmentNotFound when the asset is unassigned.
	FindActiveByAsset(ctx context.Context, assetID string) (*domain.Assignment, error)
	List(ctx context.Context, filter ListAssignmentsFilter) ([]*domain.Assignment, int64, error)
}
