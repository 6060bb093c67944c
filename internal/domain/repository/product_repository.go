package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get devuelven (nil, nil) cuando el producto no existe en el tenant.
type ProductRepository interface {
	Create(ctx context.Context, t tenant.ID, product *entity.Product) error
	GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, t tenant.ID, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.Product, error)
	// GetManyForUpdate bloquea las filas en orden ascendente de id. Omite ids inexistentes.
	GetManyForUpdate(ctx context.Context, t tenant.ID, ids []string) ([]*entity.Product, error)
	List(ctx context.Context, t tenant.ID, f ProductFilter) ([]*entity.Product, int, error)
	Update(ctx context.Context, t tenant.ID, product *entity.Product) error
	// AddStock aplica delta de forma condicional (stock + delta >= 0) y devuelve el stock nuevo.
	// Si el resultado fuese negativo devuelve domain.ErrInsufficientStock sin modificar nada.
	AddStock(ctx context.Context, t tenant.ID, id string, delta decimal.Decimal) (decimal.Decimal, error)
	UpdateCost(ctx context.Context, t tenant.ID, id string, cost decimal.Decimal) error
	SetLastOrderDate(ctx context.Context, t tenant.ID, id string, at time.Time) error
}
