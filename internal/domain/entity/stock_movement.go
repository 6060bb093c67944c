package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementEntrada       = "ENTRADA"
	MovementSalida        = "SALIDA"
	MovementAjuste        = "AJUSTE"
	MovementTransferencia = "TRANSFERENCIA"
	MovementVenta         = "VENTA"
)

// Motivos registrados por los flujos automáticos.
const (
	ReasonSale         = "sale"
	ReasonPurchase     = "purchase"
	ReasonCancellation = "cancellation"
	ReasonInitialStock = "initial stock"
)

// IsMovementType reporta si t es un tipo de movimiento conocido.
func IsMovementType(t string) bool {
	switch t {
	case MovementEntrada, MovementSalida, MovementAjuste, MovementTransferencia, MovementVenta:
		return true
	}
	return false
}

// StockMovement fila inmutable del kardex. Invariante: NewStock = PreviousStock + Quantity.
type StockMovement struct {
	ID            string
	TenantID      string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal // con signo
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	Reference     string
	CreatedBy     string
	CreatedAt     time.Time
}
