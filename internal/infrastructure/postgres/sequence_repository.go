package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Retail-api/internal/domain/numbering"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por (tenant, prefijo) en document_sequences. El UPDATE toma el
// lock de la fila, así dos transacciones nunca obtienen el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Increment suma uno al contador del prefijo.
func (r *SequenceRepo) Increment(ctx context.Context, t tenant.ID, prefix string) (int64, bool, error) {
	var v int64
	err := r.q.QueryRow(ctx, `
		UPDATE document_sequences SET last_value = last_value + 1, updated_at = now()
		WHERE tenant_id = $1 AND prefix = $2
		RETURNING last_value`, t.String(), prefix).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("increment sequence: %w", err)
	}
	return v, true, nil
}

// Seed crea el contador con value; si otra transacción lo creó primero, lo incrementa.
func (r *SequenceRepo) Seed(ctx context.Context, t tenant.ID, prefix string, value int64) (int64, error) {
	var v int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (tenant_id, prefix, last_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, prefix)
		DO UPDATE SET last_value = document_sequences.last_value + 1, updated_at = now()
		RETURNING last_value`, t.String(), prefix, value).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("seed sequence: %w", err)
	}
	return v, nil
}

// LastNumber número más alto ya emitido con el prefijo. Las secuencias tienen ancho fijo,
// así que el orden lexicográfico coincide con el numérico.
func (r *SequenceRepo) LastNumber(ctx context.Context, t tenant.ID, family numbering.Family, prefix string) (string, error) {
	var table string
	switch family {
	case numbering.FamilySale, numbering.FamilySaleNote:
		table = "sales"
	case numbering.FamilyPurchase:
		table = "purchases"
	default:
		// Cotizaciones y notas las persisten colaboradores externos: solo cuenta el contador.
		return "", nil
	}
	var number string
	err := r.q.QueryRow(ctx,
		`SELECT number FROM `+table+` WHERE tenant_id = $1 AND number LIKE $2 ORDER BY number DESC LIMIT 1`,
		t.String(), escapeLike(prefix)+"%").Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last document number: %w", err)
	}
	return number, nil
}
