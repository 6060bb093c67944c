package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Retail-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción (READ COMMITTED), ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Las filas que se modifican se bloquean explícitamente con FOR UPDATE.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre q (pool para lecturas, tx dentro de Run).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Products:      NewProductRepository(q),
		Movements:     NewStockMovementRepository(q),
		Sales:         NewSaleRepository(q),
		Purchases:     NewPurchaseRepository(q),
		Suppliers:     NewSupplierRepository(q),
		Clients:       NewClientRepository(q),
		CashRegisters: NewCashRegisterRepository(q),
		Alerts:        NewReorderAlertRepository(q),
		Sequences:     NewSequenceRepository(q),
	}
}
