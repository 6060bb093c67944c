package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/inventory"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. Cost y Stock se manejan vía compras y kardex.
type ProductUseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner, repos ports.Repos) *ProductUseCase {
	return &ProductUseCase{tx: tx, repos: repos}
}

// Create crea un producto. Un stock inicial se registra como AJUSTE en el kardex dentro de
// la misma transacción, así el stock coincide con el kardex desde el primer momento.
func (uc *ProductUseCase) Create(ctx context.Context, t tenant.ID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.Code = strings.TrimSpace(in.Code)
	if in.Code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("code", "código y nombre son requeridos")
	}
	if in.InitialStock.IsNegative() || in.MinStock.IsNegative() || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.Invalid("stock", "los montos y cantidades no pueden ser negativos")
	}
	if !domain.ValidQuantityScale(in.InitialStock) {
		return nil, domain.Invalid("initialStock", "admite como máximo 3 decimales")
	}
	existing, err := uc.repos.Products.GetByCode(ctx, t, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "NIU"
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		TenantID:     t.String(),
		Code:         in.Code,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		UnitMeasure:  in.UnitMeasure,
		Price:        in.Price,
		Cost:         in.Cost,
		Stock:        decimal.Zero,
		MinStock:     in.MinStock,
		ReorderPoint: in.ReorderPoint,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Products.Create(ctx, t, product); err != nil {
			return err
		}
		if !in.InitialStock.IsPositive() {
			return nil
		}
		_, err := inventory.Apply(ctx, r, t, product, inventory.Entry{
			Type:      entity.MovementAjuste,
			Delta:     in.InitialStock,
			Reason:    entity.ReasonInitialStock,
			CreatedBy: userID,
			At:        now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := inventory.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto del tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, t tenant.ID, id string) (*dto.ProductResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.repos.Products.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := inventory.ToProductResponse(product)
	return &resp, nil
}

// Update actualiza un producto. No permite modificar Cost ni Stock.
func (uc *ProductUseCase) Update(ctx context.Context, t tenant.ID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.repos.Products.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Invalid("name", "requerido")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("price", "no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.Invalid("minStock", "no puede ser negativo")
		}
		product.MinStock = *in.MinStock
	}
	if in.ClearReorder {
		product.ReorderPoint = nil
	} else if in.ReorderPoint != nil {
		product.ReorderPoint = in.ReorderPoint
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repos.Products.Update(ctx, t, product); err != nil {
		return nil, err
	}
	resp := inventory.ToProductResponse(product)
	return &resp, nil
}

// List lista productos del tenant con filtros tipados.
func (uc *ProductUseCase) List(ctx context.Context, t tenant.ID, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, total, err := uc.repos.Products.List(ctx, t, repository.ProductFilter{
		Search:     strings.TrimSpace(in.Search),
		ActiveOnly: in.ActiveOnly,
		BelowMin:   in.BelowMin,
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, inventory.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}
