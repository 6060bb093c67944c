package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alerta de reposición, en orden de prioridad.
const (
	AlertOutOfStock   = "OUT_OF_STOCK"
	AlertLowStock     = "LOW_STOCK"
	AlertReorderPoint = "REORDER_POINT"
)

// Estados de alerta.
const (
	AlertPending      = "PENDING"
	AlertAcknowledged = "ACKNOWLEDGED"
	AlertOrdered      = "ORDERED"
	AlertResolved     = "RESOLVED"
)

// ReorderAlert alerta de reposición. Como máximo una PENDING por producto.
type ReorderAlert struct {
	ID             string
	TenantID       string
	ProductID      string
	ProductName    string
	Type           string
	CurrentStock   decimal.Decimal
	MinStock       decimal.Decimal
	ReorderPoint   *decimal.Decimal
	Status         string
	Notes          string
	AcknowledgedBy string
	CreatedAt      time.Time
	AcknowledgedAt *time.Time
	OrderedAt      *time.Time
	ResolvedAt     *time.Time
	UpdatedAt      time.Time
}
