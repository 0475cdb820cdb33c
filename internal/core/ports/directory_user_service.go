package ports

import (
	"context"
	"time"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// ListDirectoryUsersInput carries all parameters for the directory user
// list endpoint. IsActive is tri-state: nil means unfiltered.
type ListDirectoryUsersInput struct {
	Departments    []string
	IsActive       *bool
	IncludeDeleted bool
	SortBy         string
	SortDesc       bool
	Page           int
	Limit          int
}

// ListDirectoryUsersResult is returned by ListUsers.
type ListDirectoryUsersResult struct {
	Items      []domain.DirectoryUser
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DirectoryUserService defines read and maintenance operations over the
// locally synchronised directory user set.
type DirectoryUserService interface {
	ListUsers(ctx context.Context, input ListDirectoryUsersInput) (*ListDirectoryUsersResult, error)
	GetUser(ctx context.Context, principalName string) (*domain.DirectoryUser, error)
	// RefreshUser fetches one user live from the directory and upserts the
	// local record.
	RefreshUser(ctx context.Context, principalName string) (*domain.DirectoryUser, error)
	// DeleteUser hard-deletes a local record; the user's assignments keep
	// their history with the user reference cleared.
	DeleteUser(ctx context.Context, id string) error
}

// SyncResult summarises one reconciliation run.
type SyncResult struct {
	Fetched    int
	Created    int
	Updated    int
	Pruned     int64
	StartedAt  time.Time
	FinishedAt time.Time
}

// SyncService runs the upsert-and-prune reconciliation against the
// directory. A run either applies completely or reports one failure; there
// is no per-record outcome.
type SyncService interface {
	Run(ctx context.Context) (*SyncResult, error)
}
