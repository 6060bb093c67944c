package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, tenant_id, client_id, number, document_type, subtotal, discount, tax, total,
	payment_method, amount_paid, change_amount, status, notes, created_by, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(s scanner, extra ...any) (*entity.Sale, error) {
	var v entity.Sale
	dest := []any{
		&v.ID, &v.TenantID, &v.ClientID, &v.Number, &v.DocumentType, &v.Subtotal, &v.Discount, &v.Tax, &v.Total,
		&v.PaymentMethod, &v.AmountPaid, &v.Change, &v.Status, &v.Notes, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste la cabecera y los ítems. Número repetido en el tenant -> domain.ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, t tenant.ID, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		s.ID, t.String(), s.ClientID, s.Number, s.DocumentType, s.Subtotal, s.Discount, s.Tax, s.Total,
		s.PaymentMethod, s.AmountPaid, s.Change, s.Status, s.Notes, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de venta %s: %w", s.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, position, product_id, product_name, product_code,
				quantity, unit_price, discount, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, s.ID, i, it.ProductID, it.ProductName, it.ProductCode,
			it.Quantity, it.UnitPrice, it.Discount, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	s.TenantID = t.String()
	return nil
}

func (r *SaleRepo) get(ctx context.Context, t tenant.ID, id string, forUpdate bool) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1 AND id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	s, err := scanSale(r.q.QueryRow(ctx, query, t.String(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s.Items, err = r.items(ctx, t, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// items filtra por tenant a través de la venta dueña.
func (r *SaleRepo) items(ctx context.Context, t tenant.ID, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.sale_id, i.product_id, i.product_name, i.product_code, i.quantity, i.unit_price, i.discount, i.subtotal
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id AND s.tenant_id = $1
		WHERE i.sale_id = $2 ORDER BY i.position`, t.String(), saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.ProductCode,
			&it.Quantity, &it.UnitPrice, &it.Discount, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetByID obtiene una venta con sus ítems.
func (r *SaleRepo) GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Sale, error) {
	return r.get(ctx, t, id, false)
}

// GetForUpdate obtiene la venta y bloquea la cabecera hasta el fin de la transacción.
func (r *SaleRepo) GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.Sale, error) {
	return r.get(ctx, t, id, true)
}

// UpdateStatus cambia estado y notas.
func (r *SaleRepo) UpdateStatus(ctx context.Context, t tenant.ID, id, status, notes string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $3, notes = $4, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		t.String(), id, status, notes)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas (con ítems) más recientes primero.
func (r *SaleRepo) List(ctx context.Context, t tenant.ID, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	page := f.Page.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", t.String())
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.PaymentMethod != "" {
		w.add("payment_method = $%d", f.PaymentMethod)
	}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.NumberPrefix != "" {
		w.add("number LIKE $%d", escapeLike(f.NumberPrefix)+"%")
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	query := `SELECT ` + saleColumns + `, count(*) OVER() FROM sales` + w.sql() +
		` ORDER BY created_at DESC, number DESC` + w.page(page.Limit, page.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	var (
		list  []*entity.Sale
		total int
	)
	for rows.Next() {
		s, err := scanSale(rows, &total)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	// Los ítems se cargan con el cursor ya cerrado: una tx no admite dos queries abiertas.
	for _, s := range list {
		if s.Items, err = r.items(ctx, t, s.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// TotalsByPaymentMethod agrega ventas COMPLETADA del tenant desde since.
func (r *SaleRepo) TotalsByPaymentMethod(ctx context.Context, t tenant.ID, since time.Time) ([]repository.PaymentTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT payment_method, count(*), COALESCE(sum(total), 0)
		FROM sales
		WHERE tenant_id = $1 AND status = $2 AND created_at >= $3
		GROUP BY payment_method
		ORDER BY payment_method`, t.String(), entity.SaleStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("sales totals by payment method: %w", err)
	}
	defer rows.Close()
	var out []repository.PaymentTotal
	for rows.Next() {
		var pt repository.PaymentTotal
		if err := rows.Scan(&pt.Method, &pt.Count, &pt.Total); err != nil {
			return nil, fmt.Errorf("scan payment total: %w", err)
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}
