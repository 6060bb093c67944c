package repository

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// PurchaseRepository puerto de persistencia de compras.
type PurchaseRepository interface {
	Create(ctx context.Context, t tenant.ID, purchase *entity.Purchase) error
	GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Purchase, error)
	List(ctx context.Context, t tenant.ID, f PurchaseFilter) ([]*entity.Purchase, int, error)
}
