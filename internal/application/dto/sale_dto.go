package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. UnitPrice omitido = precio actual del producto.
type SaleItemRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unitPrice" validate:"omitempty,gte=0"`
	Discount  decimal.Decimal  `json:"discount" validate:"gte=0"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	ClientID      *string           `json:"clientId"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=EFECTIVO TARJETA TRANSFERENCIA YAPE PLIN"`
	AmountPaid    *decimal.Decimal  `json:"amountPaid" validate:"omitempty,gte=0"`
	DocumentType  string            `json:"documentType" validate:"omitempty,oneof=BOLETA FACTURA NOTA_VENTA"`
	Notes         string            `json:"notes" validate:"max=500"`
}

// UpdateSaleRequest body para PATCH /api/sales/:id. Solo admite la acción ANULAR.
type UpdateSaleRequest struct {
	Action string `json:"action" validate:"required,oneof=ANULAR"`
	Reason string `json:"reason" validate:"max=500"`
}

// SaleFilterRequest query de GET /api/sales.
type SaleFilterRequest struct {
	Status        string     `query:"status" validate:"omitempty,oneof=COMPLETADA ANULADA PENDIENTE"`
	PaymentMethod string     `query:"paymentMethod"`
	ClientID      string     `query:"clientId"`
	Number        string     `query:"number"`
	From          *time.Time `query:"-"`
	To            *time.Time `query:"-"`
	PageRequest
}

// SaleItemResponse snapshot de la línea al momento de la venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductCode string          `json:"productCode"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta con sus ítems.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	ClientID      *string            `json:"clientId"`
	DocumentType  string             `json:"documentType"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	AmountPaid    decimal.Decimal    `json:"amountPaid"`
	Change        decimal.Decimal    `json:"change"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes"`
	CreatedBy     string             `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
