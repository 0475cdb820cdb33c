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

type AssetService struct {
	assets      ports.AssetRepository
	assignments ports.AssignmentRepository
	users       ports.DirectoryUserRepository
	osOptions   ports.OSOptionRepository
	logger      zerolog.Logger
}

func NewAssetService(
	assets ports.AssetRepository,
	assignments ports.AssignmentRepository,
	users ports.DirectoryUserRepository,
	osOptions ports.OSOptionRepository,
	logger zerolog.Logger,
) *AssetService {
	return &AssetService{
		assets:      assets,
		assignments: assignments,
		users:       users,
		osOptions:   osOptions,
		logger:      logger,
	}
}

// CreateAsset registers a new asset. Status defaults to operational when
// empty; a duplicate serial number propagates as
// domain.ErrDuplicateSerialNumber without partial writes.
func (s *AssetService) CreateAsset(ctx context.Context, input ports.CreateAssetInput) (*ports.AssetDetail, error) {
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkOSOption(ctx, input.OSOptionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		Name:         input.Name,
		Category:     input.Category,
		Brand:        input.Brand,
		Model:        input.Model,
		OSOptionID:   input.OSOptionID,
		SerialNumber: input.SerialNumber,
		PurchaseDate: input.PurchaseDate,
		Status:       status,
		Location:     input.Location,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		s.logger.Error().Err(err).Str("serial_number", input.SerialNumber).Msg("failed to create asset")
		return nil, err
	}

	metrics.AssetsCreatedTotal.Inc()
	s.logger.Info().Str("asset_id", asset.ID).Str("serial_number", asset.SerialNumber).Msg("asset created")

	return s.detail(ctx, asset)
}

// GetAsset returns the asset with its derived projections.
func (s *AssetService) GetAsset(ctx context.Context, id string) (*ports.AssetDetail, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, asset)
}

// UpdateAsset replaces the asset's editable fields. CreatedAt is preserved.
func (s *AssetService) UpdateAsset(ctx context.Context, input ports.UpdateAssetInput) (*ports.AssetDetail, error) {
	asset, err := s.assets.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkOSOption(ctx, input.OSOptionID); err != nil {
		return nil, err
	}

	asset.Name = input.Name
	asset.Category = input.Category
	asset.Brand = input.Brand
	asset.Model = input.Model
	asset.OSOptionID = input.OSOptionID
	asset.SerialNumber = input.SerialNumber
	asset.PurchaseDate = input.PurchaseDate
	asset.Status = status
	asset.Location = input.Location
	asset.Notes = input.Notes
	asset.UpdatedAt = time.Now().UTC()

	if err := s.assets.Update(ctx, asset); err != nil {
		s.logger.Error().Err(err).Str("asset_id", asset.ID).Msg("failed to update asset")
		return nil, err
	}

	return s.detail(ctx, asset)
}

// DeleteAsset removes the asset and all of its assignments.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	if err := s.assets.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("asset_id", id).Msg("asset deleted with its assignments")
	return nil
}

// ListAssets returns a filtered, sorted page of assets.
func (s *AssetService) ListAssets(ctx context.Context, input ports.ListAssetsInput) (*ports.ListAssetsResult, error) {
	page, limit := normalizePaging(input.Page, input.Limit)

	items, total, err := s.assets.List(ctx, ports.ListAssetsFilter{
		Statuses:      input.Statuses,
		Categories:    input.Categories,
		Brands:        input.Brands,
		Locations:     input.Locations,
		PurchasedFrom: input.PurchasedFrom,
		PurchasedTo:   input.PurchasedTo,
		SortBy:        input.SortBy,
		SortDesc:      input.SortDesc,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.AssetSummary, len(items))
	for i, a := range items {
		summaries[i] = ports.AssetSummary{
			ID:           a.ID,
			Name:         a.Name,
			Category:     a.Category,
			Brand:        a.Brand,
			Model:        a.Model,
			SerialNumber: a.SerialNumber,
			PurchaseDate: a.PurchaseDate,
			Status:       string(a.Status),
			Location:     a.Location,
		}
	}

	return &ports.ListAssetsResult{
		Items:      summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// detail builds the read-time projections: is_assigned, current_location
// and current_user are derived from the active assignment, never stored.
func (s *AssetService) detail(ctx context.Context, asset *domain.Asset) (*ports.AssetDetail, error) {
	d := &ports.AssetDetail{
		ID:           asset.ID,
		Name:         asset.Name,
		Category:     asset.Category,
		Brand:        asset.Brand,
		Model:        asset.Model,
		OSOptionID:   asset.OSOptionID,
		SerialNumber: asset.SerialNumber,
		PurchaseDate: asset.PurchaseDate,
		Status:       string(asset.Status),
		Location:     asset.Location,
		Notes:        asset.Notes,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}

	active, err := s.assignments.FindActiveByAsset(ctx, asset.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			d.IsAssigned = false
			d.CurrentLocation = asset.Location
			d.CurrentUser = domain.HolderAvailable
			return d, nil
		}
		return nil, err
	}

	d.IsAssigned = true
	d.CurrentLocation = active.Location
	d.CurrentUser, err = s.resolveHolder(ctx, active)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *AssetService) resolveHolder(ctx context.Context, active *domain.Assignment) (string, error) {
	if active.UserID == nil {
		return domain.HolderShared, nil
	}
	user, err := s.users.FindByID(ctx, *active.UserID)
	if err != nil {
		// The reference may have been cleared concurrently with a user
		// deletion; treat the asset as held but anonymous.
		if errors.Is(err, domain.ErrDirectoryUserNotFound) {
			return domain.HolderShared, nil
		}
		return "", err
	}
	// Users pruned by sync no longer resolve by name; the asset stays
	// held but anonymous until the assignment is closed or reassigned.
	if user.DeletedAt != nil {
		return domain.HolderShared, nil
	}
	if user.DisplayName != "" {
		return user.DisplayName, nil
	}
	return user.PrincipalName, nil
}

func resolveStatus(raw string) (domain.AssetStatus, error) {
	if raw == "" {
		return domain.StatusOperational, nil
	}
	status := domain.AssetStatus(raw)
	if !status.Valid() {
		return "", domain.ErrInvalidAssetStatus
	}
	return status, nil
}

func (s *AssetService) checkOSOption(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	_, err := s.osOptions.FindByID(ctx, *id)
	return err
}
