package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unitCost" validate:"gte=0"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplierId" validate:"required"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	InvoiceNumber string                `json:"invoiceNumber" validate:"max=50"`
	InvoiceDate   *time.Time            `json:"invoiceDate"`
	Notes         string                `json:"notes" validate:"max=500"`
}

// PurchaseFilterRequest query de GET /api/purchases.
type PurchaseFilterRequest struct {
	SupplierID string     `query:"supplierId"`
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
	PageRequest
}

// PurchaseItemResponse snapshot de la línea de compra.
type PurchaseItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductCode string          `json:"productCode"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	Number        string                 `json:"number"`
	SupplierID    string                 `json:"supplierId"`
	InvoiceNumber string                 `json:"invoiceNumber"`
	InvoiceDate   *time.Time             `json:"invoiceDate"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	Tax           decimal.Decimal        `json:"tax"`
	Total         decimal.Decimal        `json:"total"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes"`
	CreatedBy     string                 `json:"createdBy"`
	CreatedAt     time.Time              `json:"createdAt"`
	Items         []PurchaseItemResponse `json:"items"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
