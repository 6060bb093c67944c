package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

// PaymentTotal agregado de ventas por método de pago.
type PaymentTotal struct {
	Method string
	Count  int
	Total  decimal.Decimal
}

// SaleRepository puerto de persistencia de ventas (cabecera + ítems).
type SaleRepository interface {
	Create(ctx context.Context, t tenant.ID, sale *entity.Sale) error
	GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, t tenant.ID, id, status, notes string) error
	List(ctx context.Context, t tenant.ID, f SaleFilter) ([]*entity.Sale, int, error)
	// TotalsByPaymentMethod agrega las ventas COMPLETADA con created_at >= since.
	TotalsByPaymentMethod(ctx context.Context, t tenant.ID, since time.Time) ([]PaymentTotal, error)
}
