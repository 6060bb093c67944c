// Package cash implementa el arqueo de caja.
package cash

import (
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Tolerance diferencia por debajo de la cual la caja se considera cuadrada.
var Tolerance = decimal.NewFromFloat(0.01)

// Expected monto esperado en caja: apertura + ventas en efectivo.
func Expected(opening, cashSales decimal.Decimal) decimal.Decimal {
	return opening.Add(cashSales)
}

// Classify clasifica la diferencia contado - esperado.
func Classify(difference decimal.Decimal) string {
	switch {
	case difference.Abs().LessThan(Tolerance):
		return entity.CashBalanced
	case difference.IsPositive():
		return entity.CashSurplus
	default:
		return entity.CashShortage
	}
}

// Reconciliation resultado del cierre.
type Reconciliation struct {
	Expected       decimal.Decimal
	Closing        decimal.Decimal
	Difference     decimal.Decimal
	Classification string
}

// Reconcile calcula el arqueo de cierre.
func Reconcile(opening, cashSales, closing decimal.Decimal) Reconciliation {
	exp := Expected(opening, cashSales)
	diff := closing.Sub(exp)
	return Reconciliation{
		Expected:       exp,
		Closing:        closing,
		Difference:     diff,
		Classification: Classify(diff),
	}
}
