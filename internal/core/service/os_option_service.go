package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// OSOptionService maintains the OS reference table.
type OSOptionService struct {
	osOptions ports.OSOptionRepository
	assets    ports.AssetRepository
	logger    zerolog.Logger
}

func NewOSOptionService(osOptions ports.OSOptionRepository, assets ports.AssetRepository, logger zerolog.Logger) *OSOptionService {
	return &OSOptionService{osOptions: osOptions, assets: assets, logger: logger}
}

func (s *OSOptionService) CreateOSOption(ctx context.Context, name string) (*domain.OSOption, error) {
	option := &domain.OSOption{Name: strings.TrimSpace(name)}
	if err := s.osOptions.Create(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

func (s *OSOptionService) ListOSOptions(ctx context.Context) ([]*domain.OSOption, error) {
	return s.osOptions.List(ctx)
}

// DeleteOSOption removes the option and clears the reference on any asset
// still using it, mirroring the set-null policy on user deletion.
func (s *OSOptionService) DeleteOSOption(ctx context.Context, id string) error {
	if err := s.osOptions.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.assets.ClearOSOption(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("os_option_id", id).Msg("failed to clear os option references")
		return err
	}
	return nil
}
