// Package sales contiene las reglas de cálculo de documentos de venta y compra.
package sales

import (
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxRate IGV fijo aplicado a (subtotal - descuento).
var TaxRate = decimal.NewFromFloat(0.18)

// Métodos de pago aceptados. Solo EFECTIVO cuenta para el arqueo de caja.
const (
	PaymentCash     = "EFECTIVO"
	PaymentCard     = "TARJETA"
	PaymentTransfer = "TRANSFERENCIA"
	PaymentYape     = "YAPE"
	PaymentPlin     = "PLIN"
)

var paymentMethods = map[string]bool{
	PaymentCash: true, PaymentCard: true, PaymentTransfer: true, PaymentYape: true, PaymentPlin: true,
}

// IsPaymentMethod reporta si m es un método de pago aceptado.
func IsPaymentMethod(m string) bool { return paymentMethods[m] }

// Line línea de documento antes de persistir.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// Gross cantidad * precio.
func (l Line) Gross() decimal.Decimal { return l.Quantity.Mul(l.UnitPrice) }

// Subtotal cantidad * precio - descuento.
func (l Line) Subtotal() decimal.Decimal { return l.Gross().Sub(l.Discount) }

// Validate rechaza cantidades no positivas, precios o descuentos negativos
// y descuentos mayores que el bruto de la línea.
func (l Line) Validate() error {
	if !l.Quantity.IsPositive() {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if !domain.ValidQuantityScale(l.Quantity) {
		return domain.Invalid("quantity", "admite como máximo 3 decimales")
	}
	if l.UnitPrice.IsNegative() {
		return domain.Invalid("unitPrice", "no puede ser negativo")
	}
	if l.Discount.IsNegative() {
		return domain.Invalid("discount", "no puede ser negativo")
	}
	if l.Discount.GreaterThan(l.Gross()) {
		return domain.Invalid("discount", "no puede superar el importe de la línea")
	}
	return nil
}

// Totals totales agregados de un documento.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute calcula los totales. El redondeo (half-up, 2 decimales) se aplica una
// sola vez sobre los agregados, nunca por línea; impuesto y total salen de los
// valores ya redondeados, que son los que se persisten.
//
//	subtotal = round(Σ(qty*price), 2), discount = round(Σ(discount), 2)
//	tax      = round((subtotal - discount) * 0.18, 2)
//	total    = subtotal - discount + tax
func Compute(lines []Line) Totals {
	subtotal, discount := decimal.Zero, decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Gross())
		discount = discount.Add(l.Discount)
	}
	subtotal, discount = subtotal.Round(2), discount.Round(2)
	base := subtotal.Sub(discount)
	tax := base.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    base.Add(tax),
	}
}

// Change vuelto = max(0, pagado - total).
func Change(amountPaid, total decimal.Decimal) decimal.Decimal {
	c := amountPaid.Sub(total)
	if c.IsNegative() {
		return decimal.Zero
	}
	return c
}
