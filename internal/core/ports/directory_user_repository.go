package ports

import (
	"context"
	"time"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// ListDirectoryUsersFilter carries all query parameters for listing
// directory users. IsActive is tri-state: nil imposes no constraint.
type ListDirectoryUsersFilter struct {
	Departments    []string
	IsActive       *bool
	IncludeDeleted bool // include soft-deleted (pruned) records
	SortBy         string // declared field name; unknown falls back to "display_name"
	SortDesc       bool
	Page           int
	Limit          int
}

// DirectoryUserRepository defines persistence operations for directory users.
type DirectoryUserRepository interface {
	// Upsert inserts or overwrites the record keyed by u.DirectoryID and
	// clears any soft-delete marker. It reports whether a new record was
	// created.
	Upsert(ctx context.Context, u *domain.DirectoryUser) (created bool, err error)
	FindByID(ctx context.Context, id string) (*domain.DirectoryUser, error)
	FindByPrincipalName(ctx context.Context, principalName string) (*domain.DirectoryUser, error)
	List(ctx context.Context, filter ListDirectoryUsersFilter) ([]*domain.DirectoryUser, int64, error)
	// SoftDeleteNotIn marks every record whose directory id is absent from
	// directoryIDs as deleted at the given time, returning how many were
	// marked. Already-marked records are left untouched.
	SoftDeleteNotIn(ctx context.Context, directoryIDs []string, at time.Time) (int64, error)
	// Delete hard-deletes the record and clears the user reference on its
	// assignments (set-null) in one transaction. Assignment history
	// survives user deletion.
	Delete(ctx context.Context, id string) error
}
