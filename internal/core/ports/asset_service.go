package ports

import (
	"context"
	"time"
)

// CreateAssetInput carries all data needed to register a new asset.
type CreateAssetInput struct {
	Name         string
	Category     string
	Brand        string
	Model        string
	OSOptionID   *string
	SerialNumber string
	PurchaseDate *time.Time
	Status       string // empty defaults to operational
	Location     string
	Notes        string
}

// UpdateAssetInput carries the full replacement state for an asset.
type UpdateAssetInput struct {
	ID           string
	Name         string
	Category     string
	Brand        string
	Model        string
	OSOptionID   *string
	SerialNumber string
	PurchaseDate *time.Time
	Status       string
	Location     string
	Notes        string
}

// AssetDetail is the full asset view including the derived projections.
// CurrentLocation is the active assignment's location when one exists, else
// the asset's own stored location. CurrentUser is the holder's display name,
// "Team/Room" for shared assignments, or "Available" when unassigned.
type AssetDetail struct {
	ID              string
	Name            string
	Category        string
	Brand           string
	Model           string
	OSOptionID      *string
	SerialNumber    string
	PurchaseDate    *time.Time
	Status          string
	Location        string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	IsAssigned      bool
	CurrentLocation string
	CurrentUser     string
}

// AssetSummary is the lightweight view used in list responses.
type AssetSummary struct {
	ID           string
	Name         string
	Category     string
	Brand        string
	Model        string
	SerialNumber string
	PurchaseDate *time.Time
	Status       string
	Location     string
}

// ListAssetsInput carries all parameters for the asset list endpoint.
type ListAssetsInput struct {
	Statuses      []string
	Categories    []string
	Brands        []string
	Locations     []string
	PurchasedFrom time.Time
	PurchasedTo   time.Time
	SortBy        string
	SortDesc      bool
	Page          int
	Limit         int
}

// ListAssetsResult is returned by ListAssets.
type ListAssetsResult struct {
	Items      []AssetSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AssetService defines use-case operations for assets.
type AssetService interface {
	CreateAsset(ctx context.Context, input CreateAssetInput) (*AssetDetail, error)
	GetAsset(ctx context.Context, id string) (*AssetDetail, error)
	UpdateAsset(ctx context.Context, input UpdateAssetInput) (*AssetDetail, error)
	DeleteAsset(ctx context.Context, id string) error
	ListAssets(ctx context.Context, input ListAssetsInput) (*ListAssetsResult, error)
}
