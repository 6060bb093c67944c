package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/kardex.
// ENTRADA/SALIDA: quantity > 0. AJUSTE: quantity = stock objetivo. TRANSFERENCIA: quantity con signo.
type RegisterMovementRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=ENTRADA SALIDA AJUSTE TRANSFERENCIA"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason" validate:"max=255"`
	Reference string          `json:"reference" validate:"max=100"`
}

// MovementFilterRequest query de GET /api/kardex.
type MovementFilterRequest struct {
	ProductID string     `query:"productId"`
	Type      string     `query:"type" validate:"omitempty,oneof=ENTRADA SALIDA AJUSTE TRANSFERENCIA VENTA"`
	From      *time.Time `query:"-"`
	To        *time.Time `query:"-"`
	PageRequest
}

// MovementResponse fila del kardex.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	NewStock      decimal.Decimal `json:"newStock"`
	Reason        string          `json:"reason"`
	Reference     string          `json:"reference"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// MovementListResponse lista paginada del kardex.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ProductKardexResponse resumen del kardex de un producto.
// Consistent indica si stock coincide con el newStock del último movimiento.
type ProductKardexResponse struct {
	Product    ProductResponse    `json:"product"`
	Movements  []MovementResponse `json:"movements"`
	Consistent bool               `json:"consistent"`
}
