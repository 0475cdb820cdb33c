package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetdesk/inventory-system/internal/api/metrics"
	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// AssignmentService is the assignment lifecycle engine. It owns the
// active→returned transition and its side effect: on the transition edge
// the asset is flipped to maintenance, atomically with the assignment
// write. The edge fires only when the assignment was active immediately
// before the write; re-saving a returned assignment or importing one that
// is already closed never re-triggers it.
type AssignmentService struct {
	assignments ports.AssignmentRepository
	assets      ports.AssetRepository
	users       ports.DirectoryUserRepository
	// allowShared permits multiple simultaneous active assignments for one
	// asset (shared team equipment). When false, opening a second active
	// assignment fails with domain.ErrAssetAlreadyAssigned.
	allowShared bool
	logger      zerolog.Logger
}

func NewAssignmentService(
	assignments ports.AssignmentRepository,
	assets ports.AssetRepository,
	users ports.DirectoryUserRepository,
	allowShared bool,
	logger zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		assets:      assets,
		users:       users,
		allowShared: allowShared,
		logger:      logger,
	}
}

// CreateAssignment opens a new assignment for an existing asset.
func (s *AssignmentService) CreateAssignment(ctx context.Context, input ports.CreateAssignmentInput) (*ports.AssignmentDetail, error) {
	if _, err := s.assets.FindByID(ctx, input.AssetID); err != nil {
		return nil, err
	}
	if input.UserID != nil {
		if _, err := s.users.FindByID(ctx, *input.UserID); err != nil {
			return nil, err
		}
	}

	// Guard the single-active-assignment convention. Historical imports
	// (returned date already set) never conflict.
	if input.ReturnedDate == nil && !s.allowShared {
		_, err := s.assignments.FindActiveByAsset(ctx, input.AssetID)
		switch {
		case err == nil:
			return nil, domain.ErrAssetAlreadyAssigned
		case !errors.Is(err, domain.ErrAssignmentNotFound):
			return nil, err
		}
	}

	now := time.Now().UTC()
	assignedDate := now.Truncate(24 * time.Hour)
	if input.AssignedDate != nil {
		assignedDate = *input.AssignedDate
	}

	assignment := &domain.Assignment{
		AssetID:      input.AssetID,
		UserID:       input.UserID,
		AssignedDate: assignedDate,
		ReturnedDate: input.ReturnedDate,
		Location:     input.Location,
		Reason:       input.Reason,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		s.logger.Error().Err(err).Str("asset_id", input.AssetID).Msg("failed to create assignment")
		return nil, err
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID).
		Str("asset_id", assignment.AssetID).
		Bool("active", assignment.IsActive()).
		Msg("assignment created")

	return toAssignmentDetail(assignment), nil
}

// GetAssignment returns one assignment by id.
func (s *AssignmentService) GetAssignment(ctx context.Context, id string) (*ports.AssignmentDetail, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAssignmentDetail(assignment), nil
}

// UpdateAssignment applies the restricted writable field set. When the
// update sets a return date on a previously-active assignment, the owning
// asset is moved to maintenance in the same transaction.
func (s *AssignmentService) UpdateAssignment(ctx context.Context, input ports.UpdateAssignmentInput) (*ports.AssignmentDetail, error) {
	assignment, err := s.assignments.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	wasActive := assignment.IsActive()

	if input.Location != nil {
		assignment.Location = *input.Location
	}
	if input.Notes != nil {
		assignment.Notes = *input.Notes
	}
	if input.ReturnedDate != nil {
		assignment.ReturnedDate = input.ReturnedDate
	}
	assignment.UpdatedAt = time.Now().UTC()

	if wasActive && input.ReturnedDate != nil {
		// Transition edge: close the assignment and flag the asset for
		// inspection before reuse.
		if err := s.assignments.CloseWithAsset(ctx, assignment, domain.StatusMaintenance); err != nil {
			s.logger.Error().Err(err).Str("assignment_id", assignment.ID).Msg("failed to close assignment")
			return nil, err
		}
		metrics.AssignmentsClosedTotal.Inc()
		s.logger.Info().
			Str("assignment_id", assignment.ID).
			Str("asset_id", assignment.AssetID).
			Msg("assignment closed, asset moved to maintenance")
		return toAssignmentDetail(assignment), nil
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		s.logger.Error().Err(err).Str("assignment_id", assignment.ID).Msg("failed to update assignment")
		return nil, err
	}
	return toAssignmentDetail(assignment), nil
}

// ListAssignments returns a filtered, sorted page of assignments.
func (s *AssignmentService) ListAssignments(ctx context.Context, input ports.ListAssignmentsInput) (*ports.ListAssignmentsResult, error) {
	page, limit := normalizePaging(input.Page, input.Limit)

	items, total, err := s.assignments.List(ctx, ports.ListAssignmentsFilter{
		Status:       input.Status,
		Locations:    input.Locations,
		AssignedFrom: input.AssignedFrom,
		AssignedTo:   input.AssignedTo,
		ReturnedFrom: input.ReturnedFrom,
		ReturnedTo:   input.ReturnedTo,
		SortBy:       input.SortBy,
		SortDesc:     input.SortDesc,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	details := make([]ports.AssignmentDetail, len(items))
	for i, a := range items {
		details[i] = *toAssignmentDetail(a)
	}

	return &ports.ListAssignmentsResult{
		Items:      details,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func toAssignmentDetail(a *domain.Assignment) *ports.AssignmentDetail {
	return &ports.AssignmentDetail{
		ID:           a.ID,
		AssetID:      a.AssetID,
		UserID:       a.UserID,
		AssignedDate: a.AssignedDate,
		ReturnedDate: a.ReturnedDate,
		Location:     a.Location,
		Reason:       a.Reason,
		Notes:        a.Notes,
		Active:       a.IsActive(),
	}
}
