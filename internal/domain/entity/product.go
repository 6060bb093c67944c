package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un tenant.
// Stock solo cambia vía ventas, compras o movimientos de kardex; siempre coincide con
// el NewStock del último StockMovement del producto.
type Product struct {
	ID            string
	TenantID      string
	Code          string // único por tenant
	Name          string
	Description   string
	UnitMeasure   string
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo según la estrategia configurada
	Stock         decimal.Decimal // >= 0
	MinStock      decimal.Decimal
	ReorderPoint  *decimal.Decimal // nil = sin punto de reorden
	IsActive      bool
	LastOrderDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
