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
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, code, name, description, unit_measure, price, cost, stock,
	min_stock, reorder_point, is_active, last_order_date, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner, extra ...any) (*entity.Product, error) {
	var p entity.Product
	dest := []any{
		&p.ID, &p.TenantID, &p.Code, &p.Name, &p.Description, &p.UnitMeasure, &p.Price, &p.Cost, &p.Stock,
		&p.MinStock, &p.ReorderPoint, &p.IsActive, &p.LastOrderDate, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Código repetido en el tenant -> domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, t tenant.ID, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, t.String(), p.Code, p.Name, p.Description, p.UnitMeasure, p.Price, p.Cost, p.Stock,
		p.MinStock, p.ReorderPoint, p.IsActive, p.LastOrderDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	p.TenantID = t.String()
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByID obtiene un producto del tenant por ID.
func (r *ProductRepo) GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product",
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`, t.String(), id)
}

// GetByCode obtiene un producto por código dentro del tenant.
func (r *ProductRepo) GetByCode(ctx context.Context, t tenant.ID, code string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by code",
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND code = $2`, t.String(), code)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update",
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, t.String(), id)
}

// GetManyForUpdate bloquea varias filas en orden de id para que dos transacciones que tocan
// los mismos productos no se bloqueen mutuamente.
func (r *ProductRepo) GetManyForUpdate(ctx context.Context, t tenant.ID, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = ANY($2) ORDER BY id FOR UPDATE`,
		t.String(), ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List lista productos del tenant con filtros y el total para paginar.
func (r *ProductRepo) List(ctx context.Context, t tenant.ID, f repository.ProductFilter) ([]*entity.Product, int, error) {
	page := f.Page.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", t.String())
	if f.Search != "" {
		w.add(`(code ILIKE $%[1]d OR name ILIKE $%[1]d)`, "%"+escapeLike(f.Search)+"%")
	}
	if f.ActiveOnly {
		w.raw("is_active")
	}
	if f.BelowMin {
		w.raw("stock <= min_stock")
	}
	query := `SELECT ` + productColumns + `, count(*) OVER() FROM products` + w.sql() +
		` ORDER BY name, id` + w.page(page.Limit, page.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Product
		total int
	)
	for rows.Next() {
		p, err := scanProduct(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update actualiza los datos de catálogo. No modifica Cost ni Stock (se manejan vía compras y kardex).
func (r *ProductRepo) Update(ctx context.Context, t tenant.ID, p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, description = $4, unit_measure = $5, price = $6, min_stock = $7,
			reorder_point = $8, is_active = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		t.String(), p.ID, p.Name, p.Description, p.UnitMeasure, p.Price, p.MinStock,
		p.ReorderPoint, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddStock suma delta al stock en un único UPDATE condicional y devuelve el valor resultante.
func (r *ProductRepo) AddStock(ctx context.Context, t tenant.ID, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND stock + $3 >= 0
		RETURNING stock`, t.String(), id, delta).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isCheckViolation(err) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return decimal.Zero, fmt.Errorf("add stock: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE tenant_id = $1 AND id = $2)`, t.String(), id,
	).Scan(&exists); err != nil {
		return decimal.Zero, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return decimal.Zero, domain.ErrNotFound
	}
	return decimal.Zero, domain.ErrInsufficientStock
}

// UpdateCost actualiza solo el costo del producto (usado por el motor de compras).
func (r *ProductRepo) UpdateCost(ctx context.Context, t tenant.ID, id string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET cost = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		t.String(), id, cost,
	)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// SetLastOrderDate registra la fecha del último pedido de reposición.
func (r *ProductRepo) SetLastOrderDate(ctx context.Context, t tenant.ID, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET last_order_date = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		t.String(), id, at,
	)
	if err != nil {
		return fmt.Errorf("update last order date: %w", err)
	}
	return nil
}
