package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

const cashRegisterColumns = `id, tenant_id, opening_amount, opened_at, opened_by, closed_at, closed_by,
	closing_amount, expected_amount, difference, classification, notes`

// CashRegisterRepo sesiones de caja sobre PostgreSQL. El índice único parcial
// ux_cash_registers_open garantiza una sola sesión abierta por tenant.
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

func scanCashRegister(s scanner, extra ...any) (*entity.CashRegister, error) {
	var c entity.CashRegister
	dest := []any{
		&c.ID, &c.TenantID, &c.OpeningAmount, &c.OpenedAt, &c.OpenedBy, &c.ClosedAt, &c.ClosedBy,
		&c.ClosingAmount, &c.ExpectedAmount, &c.Difference, &c.Classification, &c.Notes,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create abre una sesión.
func (r *CashRegisterRepo) Create(ctx context.Context, t tenant.ID, c *entity.CashRegister) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cash_registers (id, tenant_id, opening_amount, opened_at, opened_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, t.String(), c.OpeningAmount, c.OpenedAt, c.OpenedBy, c.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCashRegisterOpen
		}
		return fmt.Errorf("insert cash register: %w", err)
	}
	c.TenantID = t.String()
	return nil
}

func (r *CashRegisterRepo) getOpen(ctx context.Context, t tenant.ID, suffix string) (*entity.CashRegister, error) {
	c, err := scanCashRegister(r.q.QueryRow(ctx,
		`SELECT `+cashRegisterColumns+` FROM cash_registers WHERE tenant_id = $1 AND closed_at IS NULL`+suffix,
		t.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open cash register: %w", err)
	}
	return c, nil
}

// GetOpen devuelve la sesión abierta del tenant.
func (r *CashRegisterRepo) GetOpen(ctx context.Context, t tenant.ID) (*entity.CashRegister, error) {
	return r.getOpen(ctx, t, "")
}

// GetOpenForUpdate devuelve la sesión abierta y bloquea la fila.
func (r *CashRegisterRepo) GetOpenForUpdate(ctx context.Context, t tenant.ID) (*entity.CashRegister, error) {
	return r.getOpen(ctx, t, " FOR UPDATE")
}

// Close persiste el arqueo. Si la sesión ya estaba cerrada devuelve domain.ErrNoOpenCashRegister.
func (r *CashRegisterRepo) Close(ctx context.Context, t tenant.ID, c *entity.CashRegister) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE cash_registers SET closed_at = $3, closed_by = $4, closing_amount = $5, expected_amount = $6,
			difference = $7, classification = $8, notes = $9
		WHERE tenant_id = $1 AND id = $2 AND closed_at IS NULL`,
		t.String(), c.ID, c.ClosedAt, c.ClosedBy, c.ClosingAmount, c.ExpectedAmount,
		c.Difference, c.Classification, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("close cash register: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNoOpenCashRegister
	}
	return nil
}

// ListClosed lista sesiones cerradas, más recientes primero, con el total sin paginar.
func (r *CashRegisterRepo) ListClosed(ctx context.Context, t tenant.ID, p repository.Page) ([]*entity.CashRegister, int, error) {
	p = p.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+cashRegisterColumns+`, count(*) OVER() FROM cash_registers
		WHERE tenant_id = $1 AND closed_at IS NOT NULL
		ORDER BY closed_at DESC, id LIMIT $2 OFFSET $3`, t.String(), p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.CashRegister
		total int
	)
	for rows.Next() {
		c, err := scanCashRegister(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cash register: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}
