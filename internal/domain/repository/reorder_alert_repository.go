package repository

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// ReorderAlertRepository puerto de alertas de reposición.
type ReorderAlertRepository interface {
	// Create devuelve domain.ErrPendingAlertExists si el producto ya tiene una PENDING.
	Create(ctx context.Context, t tenant.ID, alert *entity.ReorderAlert) error
	// CreateIfNoPending inserta solo si no hay otra PENDING para el producto.
	CreateIfNoPending(ctx context.Context, t tenant.ID, alert *entity.ReorderAlert) (bool, error)
	GetByID(ctx context.Context, t tenant.ID, id string) (*entity.ReorderAlert, error)
	GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.ReorderAlert, error)
	GetPendingByProduct(ctx context.Context, t tenant.ID, productID string) (*entity.ReorderAlert, error)
	Update(ctx context.Context, t tenant.ID, alert *entity.ReorderAlert) error
	List(ctx context.Context, t tenant.ID, f AlertFilter) ([]*entity.ReorderAlert, int, error)
}
