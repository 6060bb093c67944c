package repository

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain/numbering"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// SequenceRepository contador monotónico por (tenant, prefijo). Debe usarse dentro de
// la misma transacción que persiste el documento numerado.
type SequenceRepository interface {
	// Increment incrementa y devuelve el contador; ok=false si el prefijo aún no existe.
	Increment(ctx context.Context, t tenant.ID, prefix string) (value int64, ok bool, err error)
	// Seed crea el contador con value, o lo incrementa si otra transacción lo creó antes.
	Seed(ctx context.Context, t tenant.ID, prefix string, value int64) (int64, error)
	// LastNumber número de documento más alto ya emitido con el prefijo ("" si ninguno).
	LastNumber(ctx context.Context, t tenant.ID, family numbering.Family, prefix string) (string, error)
}
