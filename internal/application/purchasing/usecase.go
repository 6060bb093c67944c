// Package purchasing implementa el motor de compras: espejo de ventas con el signo opuesto.
package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/inventory"
	appnumbering "github.com/jhoicas/Retail-api/internal/application/numbering"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Retail-api/internal/domain/inventory"
	"github.com/jhoicas/Retail-api/internal/domain/numbering"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/sales"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// UseCase casos de uso de compras.
type UseCase struct {
	tx      ports.TxRunner
	repos   ports.Repos
	costing domaininv.CostingStrategy
	now     func() time.Time
}

// NewUseCase construye el caso de uso con la estrategia de costeo configurada.
func NewUseCase(tx ports.TxRunner, repos ports.Repos, costing domaininv.CostingStrategy) *UseCase {
	if costing == nil {
		costing = domaininv.LastCost{}
	}
	return &UseCase{tx: tx, repos: repos, costing: costing, now: time.Now}
}

// Create registra una compra: en una transacción persiste compra + ítems, suma stock con
// una fila ENTRADA por ítem y actualiza el costo del producto según la estrategia.
func (uc *UseCase) Create(ctx context.Context, t tenant.ID, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.SupplierID == "" {
		return nil, domain.Invalid("supplierId", "requerido")
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "la compra debe tener al menos un ítem")
	}
	ids := make(map[string]struct{}, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID == "" {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].productId", i), "requerido")
		}
		ids[it.ProductID] = struct{}{}
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	var purchase *entity.Purchase
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		supplier, err := r.Suppliers.GetByID(ctx, t, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("proveedor %s: %w", in.SupplierID, domain.ErrNotFound)
		}
		list, err := r.Products.GetManyForUpdate(ctx, t, sorted)
		if err != nil {
			return err
		}
		products := make(map[string]*entity.Product, len(list))
		for _, p := range list {
			products[p.ID] = p
		}
		for _, id := range sorted {
			if _, ok := products[id]; !ok {
				return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
			}
		}

		lines := make([]sales.Line, len(in.Items))
		for i, it := range in.Items {
			lines[i] = sales.Line{Quantity: it.Quantity, UnitPrice: it.UnitCost}
			if err := lines[i].Validate(); err != nil {
				return err
			}
		}
		totals := sales.Compute(lines)

		now := uc.now()
		number, err := appnumbering.Next(ctx, r, t, numbering.FamilyPurchase, now)
		if err != nil {
			return err
		}
		purchase = &entity.Purchase{
			ID:            uuid.New().String(),
			TenantID:      t.String(),
			SupplierID:    supplier.ID,
			Number:        number,
			InvoiceNumber: in.InvoiceNumber,
			InvoiceDate:   in.InvoiceDate,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			Status:        entity.PurchaseStatusCompleted,
			Notes:         in.Notes,
			CreatedBy:     userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for i, it := range in.Items {
			p := products[it.ProductID]
			purchase.Items = append(purchase.Items, &entity.PurchaseItem{
				ID:          uuid.New().String(),
				PurchaseID:  purchase.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				ProductCode: p.Code,
				Quantity:    lines[i].Quantity,
				UnitCost:    lines[i].UnitPrice,
				Subtotal:    lines[i].Subtotal(),
			})
		}
		if err := r.Purchases.Create(ctx, t, purchase); err != nil {
			return err
		}

		for _, item := range purchase.Items {
			p := products[item.ProductID]
			// El costo se calcula con el stock previo a la entrada.
			newCost := uc.costing.NewCost(p.Stock, p.Cost, item.Quantity, item.UnitCost)
			_, err := inventory.Apply(ctx, r, t, p, inventory.Entry{
				Type:      entity.MovementEntrada,
				Delta:     item.Quantity,
				Reason:    entity.ReasonPurchase,
				Reference: purchase.Number,
				CreatedBy: userID,
				At:        now,
			})
			if err != nil {
				return err
			}
			if err := r.Products.UpdateCost(ctx, t, p.ID, newCost); err != nil {
				return err
			}
			p.Cost = newCost
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// GetByID obtiene una compra con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, t tenant.ID, id string) (*dto.PurchaseResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	p, err := uc.repos.Purchases.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToPurchaseResponse(p), nil
}

// List lista compras del tenant.
func (uc *UseCase) List(ctx context.Context, t tenant.ID, in dto.PurchaseFilterRequest) (*dto.PurchaseListResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, total, err := uc.repos.Purchases.List(ctx, t, repository.PurchaseFilter{
		SupplierID: in.SupplierID,
		From:       in.From,
		To:         in.To,
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ToPurchaseResponse convierte una compra al DTO.
func ToPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.PurchaseResponse{
		ID:            p.ID,
		Number:        p.Number,
		SupplierID:    p.SupplierID,
		InvoiceNumber: p.InvoiceNumber,
		InvoiceDate:   p.InvoiceDate,
		Subtotal:      p.Subtotal,
		Tax:           p.Tax,
		Total:         p.Total,
		Status:        p.Status,
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		Items:         items,
	}
}
