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

var _ repository.ReorderAlertRepository = (*ReorderAlertRepo)(nil)

const alertColumns = `id, tenant_id, product_id, product_name, type, current_stock, min_stock, reorder_point,
	status, notes, acknowledged_by, created_at, acknowledged_at, ordered_at, resolved_at, updated_at`

// ReorderAlertRepo alertas de reposición sobre PostgreSQL. El índice único parcial
// ux_reorder_alerts_pending impide dos alertas PENDING para el mismo producto.
type ReorderAlertRepo struct {
	q Querier
}

// NewReorderAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReorderAlertRepository(q Querier) *ReorderAlertRepo {
	return &ReorderAlertRepo{q: q}
}

func scanAlert(s scanner, extra ...any) (*entity.ReorderAlert, error) {
	var a entity.ReorderAlert
	dest := []any{
		&a.ID, &a.TenantID, &a.ProductID, &a.ProductName, &a.Type, &a.CurrentStock, &a.MinStock, &a.ReorderPoint,
		&a.Status, &a.Notes, &a.AcknowledgedBy, &a.CreatedAt, &a.AcknowledgedAt, &a.OrderedAt, &a.ResolvedAt, &a.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &a, nil
}

const insertAlert = `
	INSERT INTO reorder_alerts (` + alertColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

func alertArgs(t tenant.ID, a *entity.ReorderAlert) []any {
	return []any{
		a.ID, t.String(), a.ProductID, a.ProductName, a.Type, a.CurrentStock, a.MinStock, a.ReorderPoint,
		a.Status, a.Notes, a.AcknowledgedBy, a.CreatedAt, a.AcknowledgedAt, a.OrderedAt, a.ResolvedAt, a.UpdatedAt,
	}
}

// Create inserta la alerta; si ya hay una PENDING para el producto devuelve domain.ErrPendingAlertExists.
func (r *ReorderAlertRepo) Create(ctx context.Context, t tenant.ID, a *entity.ReorderAlert) error {
	if _, err := r.q.Exec(ctx, insertAlert, alertArgs(t, a)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPendingAlertExists
		}
		return fmt.Errorf("insert reorder alert: %w", err)
	}
	a.TenantID = t.String()
	return nil
}

// CreateIfNoPending inserta solo si el producto no tiene otra alerta PENDING.
func (r *ReorderAlertRepo) CreateIfNoPending(ctx context.Context, t tenant.ID, a *entity.ReorderAlert) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		insertAlert+` ON CONFLICT (tenant_id, product_id) WHERE status = 'PENDING' DO NOTHING`,
		alertArgs(t, a)...)
	if err != nil {
		return false, fmt.Errorf("insert reorder alert: %w", err)
	}
	a.TenantID = t.String()
	return cmd.RowsAffected() == 1, nil
}

func (r *ReorderAlertRepo) getOne(ctx context.Context, query string, args ...any) (*entity.ReorderAlert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reorder alert: %w", err)
	}
	return a, nil
}

// GetByID obtiene una alerta del tenant.
func (r *ReorderAlertRepo) GetByID(ctx context.Context, t tenant.ID, id string) (*entity.ReorderAlert, error) {
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM reorder_alerts WHERE tenant_id = $1 AND id = $2`, t.String(), id)
}

// GetForUpdate obtiene la alerta y bloquea la fila.
func (r *ReorderAlertRepo) GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.ReorderAlert, error) {
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM reorder_alerts WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, t.String(), id)
}

// GetPendingByProduct devuelve la alerta PENDING del producto, si existe.
func (r *ReorderAlertRepo) GetPendingByProduct(ctx context.Context, t tenant.ID, productID string) (*entity.ReorderAlert, error) {
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM reorder_alerts
		WHERE tenant_id = $1 AND product_id = $2 AND status = $3`, t.String(), productID, entity.AlertPending)
}

// Update persiste estado, marcas de tiempo y notas.
func (r *ReorderAlertRepo) Update(ctx context.Context, t tenant.ID, a *entity.ReorderAlert) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE reorder_alerts SET status = $3, notes = $4, acknowledged_by = $5, acknowledged_at = $6,
			ordered_at = $7, resolved_at = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`,
		t.String(), a.ID, a.Status, a.Notes, a.AcknowledgedBy, a.AcknowledgedAt, a.OrderedAt, a.ResolvedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reorder alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista alertas del tenant, más recientes primero.
func (r *ReorderAlertRepo) List(ctx context.Context, t tenant.ID, f repository.AlertFilter) ([]*entity.ReorderAlert, int, error) {
	page := f.Page.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", t.String())
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.Type != "" {
		w.add("type = $%d", f.Type)
	}
	if f.ProductID != "" {
		w.add("product_id = $%d", f.ProductID)
	}
	query := `SELECT ` + alertColumns + `, count(*) OVER() FROM reorder_alerts` + w.sql() +
		` ORDER BY created_at DESC, id` + w.page(page.Limit, page.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reorder alerts: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.ReorderAlert
		total int
	)
	for rows.Next() {
		a, err := scanAlert(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reorder alert: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}
