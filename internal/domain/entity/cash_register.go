package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación del arqueo al cerrar caja.
const (
	CashBalanced = "CUADRADO"
	CashSurplus  = "SOBRANTE"
	CashShortage = "FALTANTE"
)

// CashRegister sesión de caja. Como máximo una con ClosedAt == nil por tenant.
type CashRegister struct {
	ID             string
	TenantID       string
	OpeningAmount  decimal.Decimal
	OpenedAt       time.Time
	OpenedBy       string
	ClosedAt       *time.Time
	ClosedBy       string
	ClosingAmount  *decimal.Decimal
	ExpectedAmount *decimal.Decimal
	Difference     *decimal.Decimal
	Classification string
	Notes          string
}

// IsOpen reporta si la sesión sigue abierta.
func (c *CashRegister) IsOpen() bool { return c.ClosedAt == nil }
