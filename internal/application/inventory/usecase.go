package inventory

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/inventory"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// maxExportRows tope de filas de una exportación del kardex.
const maxExportRows = 50000

// MovementExporter escribe movimientos del kardex en un formato de archivo (xlsx).
type MovementExporter interface {
	WriteMovements(w io.Writer, movements []*entity.StockMovement, products map[string]*entity.Product) error
}

// KardexUseCase registra movimientos manuales de stock y consulta el kardex.
// Cada movimiento bloquea la fila del producto (SELECT FOR UPDATE) y se aplica en una transacción.
type KardexUseCase struct {
	tx       ports.TxRunner
	repos    ports.Repos
	exporter MovementExporter
	now      func() time.Time
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(tx ports.TxRunner, repos ports.Repos, exporter MovementExporter) *KardexUseCase {
	return &KardexUseCase{tx: tx, repos: repos, exporter: exporter, now: time.Now}
}

// RegisterMovement aplica un movimiento manual (ENTRADA, SALIDA, AJUSTE, TRANSFERENCIA).
func (uc *KardexUseCase) RegisterMovement(ctx context.Context, t tenant.ID, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" {
		return nil, domain.Invalid("productId", "requerido")
	}
	if in.Type == entity.MovementVenta || !entity.IsMovementType(in.Type) {
		return nil, domain.Invalid("type", "tipo de movimiento no permitido")
	}
	reason := in.Reason
	if reason == "" {
		reason = "manual"
	}

	var mov *entity.StockMovement
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, t, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta, err := inventory.ManualDelta(in.Type, in.Quantity, product.Stock)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   in.Quantity.Abs(),
					Available:   product.Stock,
				}
			}
			return err
		}
		mov, err = Apply(ctx, r, t, product, Entry{
			Type:      in.Type,
			Delta:     delta,
			Reason:    reason,
			Reference: in.Reference,
			CreatedBy: userID,
			At:        uc.now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// List lista el kardex del tenant (más reciente primero).
func (uc *KardexUseCase) List(ctx context.Context, t tenant.ID, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	f := repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		From:      in.From,
		To:        in.To,
		Page:      repository.Page{Limit: in.Limit, Offset: in.Offset},
	}
	list, total, err := uc.repos.Movements.List(ctx, t, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ProductKardex devuelve el producto, sus últimos movimientos y si el stock coincide con el kardex.
func (uc *KardexUseCase) ProductKardex(ctx context.Context, t tenant.ID, productID string, limit int) (*dto.ProductKardexResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.repos.Products.GetByID(ctx, t, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page := repository.Page{Limit: limit}.Normalize()
	list, _, err := uc.repos.Movements.List(ctx, t, repository.MovementFilter{ProductID: productID, Page: page})
	if err != nil {
		return nil, err
	}
	movs := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		movs = append(movs, *ToMovementResponse(m))
	}
	// Sin movimientos el producto debe estar en cero.
	consistent := product.Stock.IsZero()
	if len(list) > 0 {
		consistent = list[0].NewStock.Equal(product.Stock)
	}
	return &dto.ProductKardexResponse{
		Product:    ToProductResponse(product),
		Movements:  movs,
		Consistent: consistent,
	}, nil
}

// Export escribe en w los movimientos filtrados (sin paginar, hasta maxExportRows).
func (uc *KardexUseCase) Export(ctx context.Context, t tenant.ID, in dto.MovementFilterRequest, w io.Writer) error {
	if !t.Valid() {
		return domain.ErrUnauthorized
	}
	f := repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		From:      in.From,
		To:        in.To,
		Page:      repository.Page{Limit: repository.MaxLimit},
	}
	var all []*entity.StockMovement
	for len(all) < maxExportRows {
		list, _, err := uc.repos.Movements.List(ctx, t, f)
		if err != nil {
			return err
		}
		all = append(all, list...)
		if len(list) < f.Limit {
			break
		}
		f.Offset += f.Limit
	}
	products := make(map[string]*entity.Product)
	for _, m := range all {
		if _, ok := products[m.ProductID]; ok {
			continue
		}
		p, err := uc.repos.Products.GetByID(ctx, t, m.ProductID)
		if err != nil {
			return err
		}
		if p != nil {
			products[m.ProductID] = p
		}
	}
	return uc.exporter.WriteMovements(w, all, products)
}

// ToMovementResponse convierte una fila de kardex al DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Reference:     m.Reference,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// ToProductResponse convierte un producto al DTO.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		UnitMeasure:   p.UnitMeasure,
		Price:         p.Price,
		Cost:          p.Cost,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		ReorderPoint:  p.ReorderPoint,
		IsActive:      p.IsActive,
		LastOrderDate: p.LastOrderDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
