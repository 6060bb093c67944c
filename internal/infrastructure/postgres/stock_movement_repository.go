package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT:
// un trigger rechaza UPDATE y DELETE sobre stock_movements.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create agrega una fila al kardex.
func (r *StockMovementRepo) Create(ctx context.Context, t tenant.ID, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, tenant_id, product_id, type, quantity, previous_stock, new_stock,
			reason, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, t.String(), m.ProductID, m.Type, m.Quantity, m.PreviousStock, m.NewStock,
		m.Reason, m.Reference, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	m.TenantID = t.String()
	return nil
}

// List lista movimientos del tenant (el alcance lo da el producto dueño), más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, t tenant.ID, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	page := f.Page.Normalize()
	w := &whereBuilder{}
	w.add("p.tenant_id = $%d", t.String())
	if f.ProductID != "" {
		w.add("m.product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		w.add("m.type = $%d", f.Type)
	}
	if f.From != nil {
		w.add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("m.created_at <= $%d", *f.To)
	}
	query := `
		SELECT m.id, p.tenant_id, m.product_id, m.type, m.quantity, m.previous_stock, m.new_stock,
			m.reason, m.reference, m.created_by, m.created_at, count(*) OVER()
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id` + w.sql() +
		` ORDER BY m.created_at DESC, m.seq DESC` + w.page(page.Limit, page.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.StockMovement
		total int
	)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousStock, &m.NewStock,
			&m.Reason, &m.Reference, &m.CreatedBy, &m.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
