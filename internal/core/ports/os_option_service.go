package ports

import (
	"context"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// OSOptionService defines maintenance operations for OS reference data.
type OSOptionService interface {
	CreateOSOption(ctx context.Context, name string) (*domain.OSOption, error)
	ListOSOptions(ctx context.Context) ([]*domain.OSOption, error)
	// DeleteOSOption removes the option and clears the reference on assets
	// using it.
	DeleteOSOption(ctx context.Context, id string) error
}
