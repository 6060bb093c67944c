package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenCashRegisterRequest body para POST /api/cash-register/open.
type OpenCashRegisterRequest struct {
	OpeningAmount decimal.Decimal `json:"openingAmount" validate:"gte=0"`
	Notes         string          `json:"notes" validate:"max=500"`
}

// CloseCashRegisterRequest body para POST /api/cash-register/close.
type CloseCashRegisterRequest struct {
	ClosingAmount decimal.Decimal `json:"closingAmount" validate:"gte=0"`
	Notes         string          `json:"notes" validate:"max=500"`
}

// CashRegisterResponse salida de una sesión de caja.
type CashRegisterResponse struct {
	ID             string           `json:"id"`
	OpeningAmount  decimal.Decimal  `json:"openingAmount"`
	OpenedAt       time.Time        `json:"openedAt"`
	OpenedBy       string           `json:"openedBy"`
	ClosedAt       *time.Time       `json:"closedAt"`
	ClosedBy       string           `json:"closedBy,omitempty"`
	ClosingAmount  *decimal.Decimal `json:"closingAmount"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount"`
	Difference     *decimal.Decimal `json:"difference"`
	Classification string           `json:"classification,omitempty"`
	Notes          string           `json:"notes"`
}

// PaymentMethodTotal ventas agregadas por método de pago.
type PaymentMethodTotal struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// CashRegisterStatusResponse estado de la caja abierta (Open=false si no hay sesión).
type CashRegisterStatusResponse struct {
	Open           bool                  `json:"open"`
	Register       *CashRegisterResponse `json:"register,omitempty"`
	SalesCount     int                   `json:"salesCount"`
	SalesTotal     decimal.Decimal       `json:"salesTotal"`
	ByMethod       []PaymentMethodTotal  `json:"byPaymentMethod"`
	ExpectedAmount decimal.Decimal       `json:"expectedAmount"`
}

// CashRegisterListResponse historial de cierres.
type CashRegisterListResponse struct {
	Items []CashRegisterResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
