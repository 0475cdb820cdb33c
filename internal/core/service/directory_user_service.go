package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// DirectoryUserService exposes the locally synchronised directory user set.
// It never creates users from user input; records originate from the sync
// reconciler or a targeted live refresh.
type DirectoryUserService struct {
	users  ports.DirectoryUserRepository
	client ports.DirectoryClient
	logger zerolog.Logger
}

func NewDirectoryUserService(users ports.DirectoryUserRepository, client ports.DirectoryClient, logger zerolog.Logger) *DirectoryUserService {
	return &DirectoryUserService{users: users, client: client, logger: logger}
}

// ListUsers returns a filtered, sorted page of directory users.
func (s *DirectoryUserService) ListUsers(ctx context.Context, input ports.ListDirectoryUsersInput) (*ports.ListDirectoryUsersResult, error) {
	page, limit := normalizePaging(input.Page, input.Limit)

	items, total, err := s.users.List(ctx, ports.ListDirectoryUsersFilter{
		Departments:    input.Departments,
		IsActive:       input.IsActive,
		IncludeDeleted: input.IncludeDeleted,
		SortBy:         input.SortBy,
		SortDesc:       input.SortDesc,
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}

	users := make([]domain.DirectoryUser, len(items))
	for i, u := range items {
		users[i] = *u
	}

	return &ports.ListDirectoryUsersResult{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetUser returns the local record for a principal name.
func (s *DirectoryUserService) GetUser(ctx context.Context, principalName string) (*domain.DirectoryUser, error) {
	return s.users.FindByPrincipalName(ctx, principalName)
}

// RefreshUser fetches one user live from the directory and upserts the
// local record. Directory "not found" and transport errors propagate
// distinctly to the caller.
func (s *DirectoryUserService) RefreshUser(ctx context.Context, principalName string) (*domain.DirectoryUser, error) {
	rec, err := s.client.FetchUser(ctx, principalName)
	if err != nil {
		return nil, err
	}

	user := &domain.DirectoryUser{
		DirectoryID:   rec.ID,
		PrincipalName: rec.PrincipalName,
		DisplayName:   fieldOrUnavailable(rec.DisplayName),
		Department:    fieldOrUnavailable(rec.Department),
		IsActive:      rec.Enabled,
		SyncedAt:      time.Now().UTC(),
	}
	if _, err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("principal_name", principalName).Msg("directory user refreshed")
	return s.users.FindByPrincipalName(ctx, rec.PrincipalName)
}

// DeleteUser hard-deletes a local record. The user's assignments survive
// with their user reference cleared.
func (s *DirectoryUserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("directory user deleted, assignment references cleared")
	return nil
}
