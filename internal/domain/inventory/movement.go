package inventory

import (
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ManualDelta calcula la variación con signo de un movimiento manual de kardex.
//
//   - ENTRADA / SALIDA: quantity > 0, se suma / resta al stock actual.
//   - AJUSTE: quantity es el stock objetivo absoluto (>= 0); delta = objetivo - actual.
//   - TRANSFERENCIA: quantity con signo distinto de cero (negativo = envío).
//
// Rechaza cantidades con más de 3 decimales y cualquier resultado que deje el stock en negativo.
func ManualDelta(movType string, quantity, current decimal.Decimal) (decimal.Decimal, error) {
	if !domain.ValidQuantityScale(quantity) {
		return decimal.Zero, domain.Invalid("quantity", "admite como máximo 3 decimales")
	}
	var delta decimal.Decimal
	switch movType {
	case entity.MovementEntrada:
		if !quantity.IsPositive() {
			return decimal.Zero, domain.Invalid("quantity", "debe ser mayor que cero")
		}
		delta = quantity
	case entity.MovementSalida:
		if !quantity.IsPositive() {
			return decimal.Zero, domain.Invalid("quantity", "debe ser mayor que cero")
		}
		delta = quantity.Neg()
	case entity.MovementAjuste:
		if quantity.IsNegative() {
			return decimal.Zero, domain.Invalid("quantity", "el stock objetivo no puede ser negativo")
		}
		delta = quantity.Sub(current)
	case entity.MovementTransferencia:
		if quantity.IsZero() {
			return decimal.Zero, domain.Invalid("quantity", "no puede ser cero")
		}
		delta = quantity
	default:
		return decimal.Zero, domain.Invalid("type", "tipo de movimiento no permitido")
	}
	if current.Add(delta).IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	return delta, nil
}
