package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de compra.
const (
	PurchaseStatusCompleted = "COMPLETADA"
	PurchaseStatusCancelled = "ANULADA"
)

// Purchase cabecera de una compra a proveedor (incrementa stock).
type Purchase struct {
	ID            string
	TenantID      string
	SupplierID    string
	Number        string
	InvoiceNumber string
	InvoiceDate   *time.Time
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Status        string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*PurchaseItem
}

// PurchaseItem copia inmutable del producto y su costo al momento de la compra.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ProductID   string
	ProductName string
	ProductCode string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Subtotal    decimal.Decimal
}
