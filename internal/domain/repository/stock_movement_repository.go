package repository

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// StockMovementRepository puerto del kardex. Solo inserción y consulta: los
// movimientos no se modifican ni se eliminan.
type StockMovementRepository interface {
	Create(ctx context.Context, t tenant.ID, movement *entity.StockMovement) error
	// List filtra por el tenant del producto dueño, del más reciente al más antiguo.
	List(ctx context.Context, t tenant.ID, f MovementFilter) ([]*entity.StockMovement, int, error)
}
