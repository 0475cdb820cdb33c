package ports

import (
	"context"
	"time"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// ListAssetsFilter carries all query parameters for listing assets.
// Empty slices and zero times impose no constraint; parameters combine with
// AND semantics. Date bounds are inclusive.
type ListAssetsFilter struct {
	Statuses      []string
	Categories    []string
	Brands        []string
	Locations     []string
	PurchasedFrom time.Time
	PurchasedTo   time.Time
	SortBy        string // declared field name; unknown falls back to "name"
	SortDesc      bool
	Page          int // 1-based
	Limit         int // capped at 100 by the service
}

// AssetRepository defines persistence operations for assets.
type AssetRepository interface {
	Create(ctx context.Context, a *domain.Asset) error
	FindByID(ctx context.Context, id string) (*domain.Asset, error)
	Update(ctx context.Context, a *domain.Asset) error
	// Delete removes the asset and cascades to all of its assignments in
	// one transaction.
	Delete(ctx context.Context, id string) error
	// List returns a page of assets matching filter and the total count.
	List(ctx context.Context, filter ListAssetsFilter) ([]*domain.Asset, int64, error)
	// ClearOSOption removes the given OS option reference from every asset
	// carrying it (set-null, used when the option is deleted).
	ClearOSOption(ctx context.Context, osOptionID string) error
}
