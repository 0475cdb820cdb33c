package ports

import (
	"context"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// OSOptionRepository defines persistence operations for OS reference data.
type OSOptionRepository interface {
	Create(ctx context.Context, o *domain.OSOption) error
	FindByID(ctx context.Context, id string) (*domain.OSOption, error)
	List(ctx context.Context) ([]*domain.OSOption, error)
	Delete(ctx context.Context, id string) error
}
