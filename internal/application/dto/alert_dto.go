package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAlertRequest body para POST /api/reorder-alerts.
type CreateAlertRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=OUT_OF_STOCK LOW_STOCK REORDER_POINT"`
	Notes     string `json:"notes" validate:"max=500"`
}

// UpdateAlertRequest body para PATCH /api/reorder-alerts/:id.
type UpdateAlertRequest struct {
	Status         string `json:"status" validate:"required,oneof=ACKNOWLEDGED ORDERED RESOLVED"`
	Notes          string `json:"notes" validate:"max=500"`
	AcknowledgedBy string `json:"acknowledgedBy" validate:"max=100"`
}

// EvaluateAlertsRequest body para POST /api/reorder-alerts/evaluate. Sin ids evalúa todo el catálogo activo.
type EvaluateAlertsRequest struct {
	ProductIDs []string `json:"productIds"`
}

// AlertFilterRequest query de GET /api/reorder-alerts.
type AlertFilterRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=PENDING ACKNOWLEDGED ORDERED RESOLVED"`
	Type      string `query:"type" validate:"omitempty,oneof=OUT_OF_STOCK LOW_STOCK REORDER_POINT"`
	ProductID string `query:"productId"`
	PageRequest
}

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"productId"`
	ProductName    string           `json:"productName"`
	Type           string           `json:"type"`
	CurrentStock   decimal.Decimal  `json:"currentStock"`
	MinStock       decimal.Decimal  `json:"minStock"`
	ReorderPoint   *decimal.Decimal `json:"reorderPoint"`
	SuggestedQty   decimal.Decimal  `json:"suggestedOrderQty"`
	Status         string           `json:"status"`
	Notes          string           `json:"notes"`
	AcknowledgedBy string           `json:"acknowledgedBy,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	AcknowledgedAt *time.Time       `json:"acknowledgedAt"`
	OrderedAt      *time.Time       `json:"orderedAt"`
	ResolvedAt     *time.Time       `json:"resolvedAt"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// NumberResponse número reservado por POST /api/numbering/:family.
type NumberResponse struct {
	Family string `json:"family"`
	Number string `json:"number"`
}
