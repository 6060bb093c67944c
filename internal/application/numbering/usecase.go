// Package numbering emite números de documento correlativos por tenant y periodo.
package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/numbering"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// Next obtiene el siguiente número de la familia usando los repos de la transacción del
// documento: si el documento no se persiste, el incremento también se revierte.
//
// El primer uso de un prefijo siembra el contador con el número más alto ya emitido
// (se parsea su sufijo numérico); los siguientes son un UPDATE atómico del contador.
func Next(ctx context.Context, r ports.Repos, t tenant.ID, f numbering.Family, at time.Time) (string, error) {
	prefix := numbering.Prefix(f, at)
	seq, ok, err := r.Sequences.Increment(ctx, t, prefix)
	if err != nil {
		return "", fmt.Errorf("numbering increment: %w", err)
	}
	if !ok {
		last, err := r.Sequences.LastNumber(ctx, t, f, prefix)
		if err != nil {
			return "", fmt.Errorf("numbering last number: %w", err)
		}
		start, _ := numbering.ParseSequence(prefix, last)
		seq, err = r.Sequences.Seed(ctx, t, prefix, start+1)
		if err != nil {
			return "", fmt.Errorf("numbering seed: %w", err)
		}
	}
	return numbering.Format(f, prefix, seq), nil
}

// UseCase reserva números para familias que emiten colaboradores externos
// (cotizaciones, notas).
type UseCase struct {
	tx  ports.TxRunner
	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx, now: time.Now}
}

// Reserve emite el siguiente número de la familia en su propia transacción.
func (uc *UseCase) Reserve(ctx context.Context, t tenant.ID, family string) (*dto.NumberResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	f, err := numbering.ParseFamily(family)
	if err != nil {
		return nil, err
	}
	var number string
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		n, err := Next(ctx, r, t, f, uc.now())
		number = n
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.NumberResponse{Family: string(f), Number: number}, nil
}
