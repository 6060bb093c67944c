package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta. COMPLETADA -> ANULADA es la única transición.
const (
	SaleStatusCompleted = "COMPLETADA"
	SaleStatusCancelled = "ANULADA"
	SaleStatusPending   = "PENDIENTE"
)

// Tipos de comprobante de venta.
const (
	DocumentBoleta    = "BOLETA"
	DocumentFactura   = "FACTURA"
	DocumentNotaVenta = "NOTA_VENTA"
)

// Sale cabecera de una venta.
type Sale struct {
	ID            string
	TenantID      string
	ClientID      *string
	Number        string // único por tenant
	DocumentType  string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	AmountPaid    decimal.Decimal
	Change        decimal.Decimal
	Status        string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*SaleItem
}

// SaleItem copia inmutable del producto al momento de la venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal
}
