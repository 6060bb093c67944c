package inventory

import (
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EvaluateAlert aplica la política de reposición en orden de prioridad:
// stock == 0 -> OUT_OF_STOCK; stock <= min -> LOW_STOCK;
// min < stock <= reorderPoint -> REORDER_POINT. "" significa sin alerta.
func EvaluateAlert(stock, minStock decimal.Decimal, reorderPoint *decimal.Decimal) string {
	switch {
	case stock.LessThanOrEqual(decimal.Zero):
		return entity.AlertOutOfStock
	case stock.LessThanOrEqual(minStock):
		return entity.AlertLowStock
	case reorderPoint != nil && stock.GreaterThan(minStock) && stock.LessThanOrEqual(*reorderPoint):
		return entity.AlertReorderPoint
	}
	return ""
}

// CanTransition reporta si la alerta puede pasar de from a to.
func CanTransition(from, to string) bool {
	switch from {
	case entity.AlertPending:
		return to == entity.AlertAcknowledged || to == entity.AlertOrdered
	case entity.AlertAcknowledged:
		return to == entity.AlertOrdered
	case entity.AlertOrdered:
		return to == entity.AlertResolved
	}
	return false
}

// SuggestedOrderQty cantidad sugerida de pedido: lleva el stock a 1.5 veces el umbral
// (punto de reorden si existe, si no el stock mínimo).
func SuggestedOrderQty(stock, minStock decimal.Decimal, reorderPoint *decimal.Decimal) decimal.Decimal {
	threshold := minStock
	if reorderPoint != nil && reorderPoint.GreaterThan(minStock) {
		threshold = *reorderPoint
	}
	ideal := threshold.Mul(decimal.NewFromFloat(1.5))
	qty := ideal.Sub(stock)
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty.Ceil()
}
