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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, tenant_id, supplier_id, number, invoice_number, invoice_date, subtotal, tax, total,
	status, notes, created_by, created_at, updated_at`

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func scanPurchase(s scanner, extra ...any) (*entity.Purchase, error) {
	var p entity.Purchase
	dest := []any{
		&p.ID, &p.TenantID, &p.SupplierID, &p.Number, &p.InvoiceNumber, &p.InvoiceDate, &p.Subtotal, &p.Tax, &p.Total,
		&p.Status, &p.Notes, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste la compra y sus ítems.
func (r *PurchaseRepo) Create(ctx context.Context, t tenant.ID, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, t.String(), p.SupplierID, p.Number, p.InvoiceNumber, p.InvoiceDate, p.Subtotal, p.Tax, p.Total,
		p.Status, p.Notes, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de compra %s: %w", p.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	for i, it := range p.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_items (id, purchase_id, position, product_id, product_name, product_code,
				quantity, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, p.ID, i, it.ProductID, it.ProductName, it.ProductCode, it.Quantity, it.UnitCost, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	p.TenantID = t.String()
	return nil
}

// items filtra por tenant a través de la compra dueña.
func (r *PurchaseRepo) items(ctx context.Context, t tenant.ID, purchaseID string) ([]*entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.purchase_id, i.product_id, i.product_name, i.product_code, i.quantity, i.unit_cost, i.subtotal
		FROM purchase_items i
		JOIN purchases p ON p.id = i.purchase_id AND p.tenant_id = $1
		WHERE i.purchase_id = $2 ORDER BY i.position`, t.String(), purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName, &it.ProductCode,
			&it.Quantity, &it.UnitCost, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetByID obtiene una compra con sus ítems.
func (r *PurchaseRepo) GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE tenant_id = $1 AND id = $2`, t.String(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if p.Items, err = r.items(ctx, t, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// List lista compras (con ítems) más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context, t tenant.ID, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	page := f.Page.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", t.String())
	if f.SupplierID != "" {
		w.add("supplier_id = $%d", f.SupplierID)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	query := `SELECT ` + purchaseColumns + `, count(*) OVER() FROM purchases` + w.sql() +
		` ORDER BY created_at DESC, number DESC` + w.page(page.Limit, page.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	var (
		list  []*entity.Purchase
		total int
	)
	for rows.Next() {
		p, err := scanPurchase(rows, &total)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	for _, p := range list {
		if p.Items, err = r.items(ctx, t, p.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}
