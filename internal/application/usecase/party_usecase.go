package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor; un RUC repetido en el tenant devuelve domain.ErrDuplicate.
func (uc *SupplierUseCase) Create(ctx context.Context, t tenant.ID, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.RUC) == "" {
		return nil, domain.Invalid("ruc", "nombre y RUC son requeridos")
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		TenantID:  t.String(),
		Name:      strings.TrimSpace(in.Name),
		RUC:       strings.TrimSpace(in.RUC),
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, t, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, t tenant.ID, id string) (*dto.SupplierResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	s, err := uc.repo.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores.
func (uc *SupplierUseCase) List(ctx context.Context, t tenant.ID, in dto.SearchRequest) ([]dto.SupplierResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, err := uc.repo.List(ctx, t, strings.TrimSpace(in.Search), repository.Page{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		RUC:       s.RUC,
		Email:     s.Email,
		Phone:     s.Phone,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// ClientUseCase alta y consulta de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente; un documento repetido en el tenant devuelve domain.ErrDuplicate.
func (uc *ClientUseCase) Create(ctx context.Context, t tenant.ID, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.DocumentNumber) == "" {
		return nil, domain.Invalid("documentNumber", "nombre y documento son requeridos")
	}
	now := time.Now()
	c := &entity.Client{
		ID:             uuid.New().String(),
		TenantID:       t.String(),
		Name:           strings.TrimSpace(in.Name),
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		Email:          in.Email,
		Phone:          in.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, t, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, t tenant.ID, id string) (*dto.ClientResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	c, err := uc.repo.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// List lista clientes.
func (uc *ClientUseCase) List(ctx context.Context, t tenant.ID, in dto.SearchRequest) ([]dto.ClientResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, err := uc.repo.List(ctx, t, strings.TrimSpace(in.Search), repository.Page{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		DocumentNumber: c.DocumentNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		CreatedAt:      c.CreatedAt,
	}
}
