package repository

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// SupplierRepository puerto de proveedores. RUC único por tenant (ErrDuplicate).
type SupplierRepository interface {
	Create(ctx context.Context, t tenant.ID, supplier *entity.Supplier) error
	GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Supplier, error)
	List(ctx context.Context, t tenant.ID, search string, p Page) ([]*entity.Supplier, error)
}

// ClientRepository puerto de clientes. Documento único por tenant (ErrDuplicate).
type ClientRepository interface {
	Create(ctx context.Context, t tenant.ID, client *entity.Client) error
	GetByID(ctx context.Context, t tenant.ID, id string) (*entity.Client, error)
	List(ctx context.Context, t tenant.ID, search string, p Page) ([]*entity.Client, error)
}
