package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestEvaluateAlert_Prioridad(t *testing.T) {
	rp := ptr(d("10"))
	cases := []struct {
		name  string
		stock string
		rp    *decimal.Decimal
		want  string
	}{
		{"sin stock", "0", rp, entity.AlertOutOfStock},
		{"bajo mínimo", "3", rp, entity.AlertLowStock},
		{"igual al mínimo", "5", rp, entity.AlertLowStock},
		{"entre mínimo y punto de reorden", "8", rp, entity.AlertReorderPoint},
		{"igual al punto de reorden", "10", rp, entity.AlertReorderPoint},
		{"sobre el punto de reorden", "11", rp, ""},
		{"sin punto de reorden", "8", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.EvaluateAlert(d(tc.stock), d("5"), tc.rp))
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{entity.AlertPending, entity.AlertAcknowledged},
		{entity.AlertPending, entity.AlertOrdered},
		{entity.AlertAcknowledged, entity.AlertOrdered},
		{entity.AlertOrdered, entity.AlertResolved},
	}
	for _, tr := range allowed {
		assert.True(t, inventory.CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{entity.AlertPending, entity.AlertResolved},
		{entity.AlertAcknowledged, entity.AlertPending},
		{entity.AlertOrdered, entity.AlertAcknowledged},
		{entity.AlertResolved, entity.AlertPending},
		{entity.AlertPending, entity.AlertPending},
	}
	for _, tr := range denied {
		assert.False(t, inventory.CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestSuggestedOrderQty(t *testing.T) {
	// umbral = mínimo (5): 7.5 - 0 -> 8
	assert.True(t, d("8").Equal(inventory.SuggestedOrderQty(decimal.Zero, d("5"), nil)))
	// umbral = punto de reorden (10): 15 - 8 = 7
	assert.True(t, d("7").Equal(inventory.SuggestedOrderQty(d("8"), d("5"), ptr(d("10")))))
	// punto de reorden menor que el mínimo: se usa el mínimo
	assert.True(t, d("5").Equal(inventory.SuggestedOrderQty(d("2.5"), d("5"), ptr(d("3")))))
	// stock por encima del ideal
	assert.True(t, inventory.SuggestedOrderQty(d("20"), d("5"), nil).IsZero())
}
