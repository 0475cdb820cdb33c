package ports

import (
	"context"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// AuthRepository defines the interface for operator account persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Operator, error)
	Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error)
}
