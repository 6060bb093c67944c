package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/inventory"
)

func TestManualDelta(t *testing.T) {
	cases := []struct {
		name     string
		movType  string
		quantity string
		current  string
		want     string
	}{
		{"entrada", entity.MovementEntrada, "4", "10", "4"},
		{"salida", entity.MovementSalida, "4", "10", "-4"},
		{"salida deja cero", entity.MovementSalida, "10", "10", "-10"},
		{"ajuste hacia abajo", entity.MovementAjuste, "6", "10", "-4"},
		{"ajuste hacia arriba", entity.MovementAjuste, "15", "10", "5"},
		{"ajuste a cero", entity.MovementAjuste, "0", "10", "-10"},
		{"transferencia envío", entity.MovementTransferencia, "-3", "10", "-3"},
		{"transferencia recepción", entity.MovementTransferencia, "3", "10", "3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			delta, err := inventory.ManualDelta(tc.movType, d(tc.quantity), d(tc.current))
			require.NoError(t, err)
			assert.True(t, d(tc.want).Equal(delta), "delta %s", delta)
		})
	}
}

func TestManualDelta_Rechazos(t *testing.T) {
	_, err := inventory.ManualDelta(entity.MovementSalida, d("11"), d("10"))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = inventory.ManualDelta(entity.MovementTransferencia, d("-11"), d("10"))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = inventory.ManualDelta(entity.MovementEntrada, d("0"), d("10"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.ManualDelta(entity.MovementAjuste, d("-1"), d("10"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.ManualDelta(entity.MovementTransferencia, d("0"), d("10"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.ManualDelta(entity.MovementEntrada, d("0.0001"), d("10"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "más de 3 decimales")

	delta, err := inventory.ManualDelta(entity.MovementEntrada, d("0.1250"), d("10"))
	require.NoError(t, err)
	assert.True(t, d("0.125").Equal(delta))

	// VENTA no se registra a mano
	_, err = inventory.ManualDelta(entity.MovementVenta, d("1"), d("10"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
