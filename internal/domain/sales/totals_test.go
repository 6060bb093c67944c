package sales_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/sales"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_UnaLinea(t *testing.T) {
	tot := sales.Compute([]sales.Line{{Quantity: d("3"), UnitPrice: d("10.00"), Discount: decimal.Zero}})

	assert.True(t, d("30.00").Equal(tot.Subtotal), "subtotal %s", tot.Subtotal)
	assert.True(t, decimal.Zero.Equal(tot.Discount))
	assert.True(t, d("5.40").Equal(tot.Tax), "tax %s", tot.Tax)
	assert.True(t, d("35.40").Equal(tot.Total), "total %s", tot.Total)
}

// El redondeo se aplica a los agregados: 3 líneas de 0.333 suman 0.999 y el
// impuesto se calcula sobre esa base, no sobre cada línea redondeada.
func TestCompute_RedondeoSobreAgregados(t *testing.T) {
	line := sales.Line{Quantity: d("1"), UnitPrice: d("0.333"), Discount: decimal.Zero}
	tot := sales.Compute([]sales.Line{line, line, line})

	assert.True(t, d("1.00").Equal(tot.Subtotal), "subtotal %s", tot.Subtotal)
	assert.True(t, d("0.18").Equal(tot.Tax), "tax %s", tot.Tax)
	assert.True(t, d("1.18").Equal(tot.Total), "total %s", tot.Total)
}

func TestCompute_ConDescuento(t *testing.T) {
	tot := sales.Compute([]sales.Line{
		{Quantity: d("2"), UnitPrice: d("50.00"), Discount: d("10.00")},
		{Quantity: d("1.5"), UnitPrice: d("4.00"), Discount: decimal.Zero},
	})

	assert.True(t, d("106.00").Equal(tot.Subtotal))
	assert.True(t, d("10.00").Equal(tot.Discount))
	assert.True(t, d("17.28").Equal(tot.Tax), "tax %s", tot.Tax)
	assert.True(t, d("113.28").Equal(tot.Total), "total %s", tot.Total)

	base := tot.Subtotal.Sub(tot.Discount).Round(2)
	assert.True(t, base.Add(tot.Tax).Equal(tot.Total))
}

func TestCompute_CantidadesFraccionarias(t *testing.T) {
	for _, price := range []string{"1.00", "1.05", "3.99"} {
		for q := int64(1); q <= 2000; q++ {
			qty := decimal.New(q, -3)
			tot := sales.Compute([]sales.Line{{Quantity: qty, UnitPrice: d(price)}})

			base := tot.Subtotal.Sub(tot.Discount)
			require.True(t, base.Mul(sales.TaxRate).Round(2).Equal(tot.Tax),
				"qty=%s price=%s subtotal=%s tax=%s", qty, price, tot.Subtotal, tot.Tax)
			require.True(t, base.Add(tot.Tax).Equal(tot.Total),
				"qty=%s price=%s total=%s", qty, price, tot.Total)
		}
	}

	// 1.026 * 1.00: el impuesto sale del subtotal persistido (1.03), no de 1.026.
	tot := sales.Compute([]sales.Line{{Quantity: d("1.026"), UnitPrice: d("1.00")}})
	assert.True(t, d("1.03").Equal(tot.Subtotal))
	assert.True(t, d("0.19").Equal(tot.Tax), "tax %s", tot.Tax)
	assert.True(t, d("1.22").Equal(tot.Total), "total %s", tot.Total)
}

func TestCompute_SinLineas(t *testing.T) {
	tot := sales.Compute(nil)
	assert.True(t, tot.Total.IsZero())
}

func TestLineValidate(t *testing.T) {
	cases := []struct {
		name  string
		line  sales.Line
		field string
	}{
		{"cantidad cero", sales.Line{Quantity: decimal.Zero, UnitPrice: d("1")}, "quantity"},
		{"cantidad negativa", sales.Line{Quantity: d("-1"), UnitPrice: d("1")}, "quantity"},
		{"precio negativo", sales.Line{Quantity: d("1"), UnitPrice: d("-1")}, "unitPrice"},
		{"descuento negativo", sales.Line{Quantity: d("1"), UnitPrice: d("1"), Discount: d("-0.5")}, "discount"},
		{"más de 3 decimales", sales.Line{Quantity: d("1.0005"), UnitPrice: d("1")}, "quantity"},
		{"descuento mayor al bruto", sales.Line{Quantity: d("2"), UnitPrice: d("1"), Discount: d("2.01")}, "discount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.line.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	ok := sales.Line{Quantity: d("2"), UnitPrice: d("1"), Discount: d("2")}
	assert.NoError(t, ok.Validate(), "descuento igual al bruto es válido")

	ok = sales.Line{Quantity: d("1.2500"), UnitPrice: d("1")}
	assert.NoError(t, ok.Validate(), "los ceros a la derecha no cuentan como decimales")
}

func TestChange(t *testing.T) {
	assert.True(t, d("14.60").Equal(sales.Change(d("50.00"), d("35.40"))))
	assert.True(t, sales.Change(d("20.00"), d("35.40")).IsZero(), "pago parcial no genera vuelto negativo")
}

func TestIsPaymentMethod(t *testing.T) {
	assert.True(t, sales.IsPaymentMethod(sales.PaymentCash))
	assert.True(t, sales.IsPaymentMethod("YAPE"))
	assert.False(t, sales.IsPaymentMethod("efectivo"))
	assert.False(t, sales.IsPaymentMethod("CHEQUE"))
}
