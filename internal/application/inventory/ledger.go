package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

// Entry cambio de stock a registrar en el kardex.
type Entry struct {
	Type      string
	Delta     decimal.Decimal // con signo
	Reason    string
	Reference string
	CreatedBy string
	At        time.Time
}

// Apply aplica el cambio de stock y agrega la fila de kardex usando los repos de la
// transacción del caller. previousStock/newStock salen del mismo UPDATE condicional,
// por lo que la fila siempre refleja el stock real.
//
// Si el stock quedase negativo devuelve *domain.InsufficientStockError.
func Apply(ctx context.Context, r ports.Repos, t tenant.ID, p *entity.Product, e Entry) (*entity.StockMovement, error) {
	newStock, err := r.Products.AddStock(ctx, t, p.ID, e.Delta)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   e.Delta.Neg(),
				Available:   p.Stock,
			}
		}
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TenantID:      t.String(),
		ProductID:     p.ID,
		Type:          e.Type,
		Quantity:      e.Delta,
		PreviousStock: newStock.Sub(e.Delta),
		NewStock:      newStock,
		Reason:        e.Reason,
		Reference:     e.Reference,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.At,
	}
	if err := r.Movements.Create(ctx, t, mov); err != nil {
		return nil, err
	}
	p.Stock = newStock
	return mov, nil
}
