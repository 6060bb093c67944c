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

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
)

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor. RUC repetido en el tenant -> domain.ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, t tenant.ID, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (id, tenant_id, name, ruc, email, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, t.String(), s.Name, s.RUC, s.Email, s.Phone, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	s.TenantID = t.String()
	return nil
}

// GetByID obtiene un proveedor del tenant.
func (r *SupplierRepo) GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, name, ruc, email, phone, is_active, created_at, updated_at
		FROM suppliers WHERE tenant_id = $1 AND id = $2`, t.String(), id,
	).Scan(&s.ID, &s.TenantID, &s.Name, &s.RUC, &s.Email, &s.Phone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores por nombre; search filtra por nombre o RUC.
func (r *SupplierRepo) List(ctx context.Context, t tenant.ID, search string, p repository.Page) ([]*entity.Supplier, error) {
	p = p.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", t.String())
	if search != "" {
		w.add(`(name ILIKE $%[1]d OR ruc ILIKE $%[1]d)`, "%"+escapeLike(search)+"%")
	}
	query := `SELECT id, tenant_id, name, ruc, email, phone, is_active, created_at, updated_at FROM suppliers` + w.sql() +
		` ORDER BY name, id` + w.page(p.Limit, p.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.RUC, &s.Email, &s.Phone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ClientRepo clientes sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente. Documento repetido en el tenant -> domain.ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, t tenant.ID, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clients (id, tenant_id, name, document_number, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, t.String(), c.Name, c.DocumentNumber, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	c.TenantID = t.String()
	return nil
}

// GetByID obtiene un cliente del tenant.
func (r *ClientRepo) GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, name, document_number, email, phone, created_at, updated_at
		FROM clients WHERE tenant_id = $1 AND id = $2`, t.String(), id,
	).Scan(&c.ID, &c.TenantID, &c.Name, &c.DocumentNumber, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List lista clientes por nombre; search filtra por nombre o documento.
func (r *ClientRepo) List(ctx context.Context, t tenant.ID, search string, p repository.Page) ([]*entity.Client, error) {
	p = p.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", t.String())
	if search != "" {
		w.add(`(name ILIKE $%[1]d OR document_number ILIKE $%[1]d)`, "%"+escapeLike(search)+"%")
	}
	query := `SELECT id, tenant_id, name, document_number, email, phone, created_at, updated_at FROM clients` + w.sql() +
		` ORDER BY name, id` + w.page(p.Limit, p.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.DocumentNumber, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
