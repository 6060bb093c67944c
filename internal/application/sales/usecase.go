// Package sales implementa el motor de ventas: creación atómica (stock, kardex, documento)
// y su inversa, la anulación.
package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/inventory"
	appnumbering "github.com/jhoicas/Retail-api/internal/application/numbering"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/numbering"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/sales"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

// ActionCancel única acción admitida sobre una venta existente.
const ActionCancel = "ANULAR"

// UseCase casos de uso de ventas.
type UseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, repos ports.Repos) *UseCase {
	return &UseCase{tx: tx, repos: repos, now: time.Now}
}

// Create valida y ejecuta una venta en una sola transacción: bloquea los productos
// (orden ascendente de id), verifica stock, numera, persiste venta + ítems y
// descuenta stock con una fila SALIDA por ítem. Si algo falla no queda nada escrito.
func (uc *UseCase) Create(ctx context.Context, t tenant.ID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "la venta debe tener al menos un ítem")
	}
	if !sales.IsPaymentMethod(in.PaymentMethod) {
		return nil, domain.Invalid("paymentMethod", "método de pago no válido")
	}
	docType := in.DocumentType
	if docType == "" {
		docType = entity.DocumentBoleta
	}
	family := numbering.FamilySale
	switch docType {
	case entity.DocumentBoleta, entity.DocumentFactura:
	case entity.DocumentNotaVenta:
		family = numbering.FamilySaleNote
	default:
		return nil, domain.Invalid("documentType", "tipo de comprobante no válido")
	}
	ids := make([]string, 0, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID == "" {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].productId", i), "requerido")
		}
		ids = append(ids, it.ProductID)
	}
	var clientID *string
	if in.ClientID != nil && *in.ClientID != "" {
		client, err := uc.repos.Clients.GetByID(ctx, t, *in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("cliente %s: %w", *in.ClientID, domain.ErrNotFound)
		}
		clientID = &client.ID
	}

	var sale *entity.Sale
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		products, err := lockProducts(ctx, r, t, ids)
		if err != nil {
			return err
		}

		lines := make([]sales.Line, len(in.Items))
		requested := make(map[string]decimal.Decimal, len(products))
		for i, it := range in.Items {
			p := products[it.ProductID]
			if !p.IsActive {
				return domain.Invalid(fmt.Sprintf("items[%d].productId", i), "producto inactivo")
			}
			price := p.Price
			if it.UnitPrice != nil {
				price = *it.UnitPrice
			}
			lines[i] = sales.Line{Quantity: it.Quantity, UnitPrice: price, Discount: it.Discount}
			if err := lines[i].Validate(); err != nil {
				return err
			}
			requested[p.ID] = requested[p.ID].Add(it.Quantity)
		}
		for _, id := range sortedKeys(requested) {
			p := products[id]
			if p.Stock.LessThan(requested[id]) {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   requested[id],
					Available:   p.Stock,
				}
			}
		}

		totals := sales.Compute(lines)
		amountPaid := totals.Total
		if in.AmountPaid != nil {
			amountPaid = *in.AmountPaid
		}
		now := uc.now()
		number, err := appnumbering.Next(ctx, r, t, family, now)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:            uuid.New().String(),
			TenantID:      t.String(),
			ClientID:      clientID,
			Number:        number,
			DocumentType:  docType,
			Subtotal:      totals.Subtotal,
			Discount:      totals.Discount,
			Tax:           totals.Tax,
			Total:         totals.Total,
			PaymentMethod: in.PaymentMethod,
			AmountPaid:    amountPaid,
			Change:        sales.Change(amountPaid, totals.Total),
			Status:        entity.SaleStatusCompleted,
			Notes:         in.Notes,
			CreatedBy:     userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for i, it := range in.Items {
			p := products[it.ProductID]
			sale.Items = append(sale.Items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				ProductCode: p.Code,
				Quantity:    lines[i].Quantity,
				UnitPrice:   lines[i].UnitPrice,
				Discount:    lines[i].Discount,
				Subtotal:    lines[i].Subtotal(),
			})
		}
		if err := r.Sales.Create(ctx, t, sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			_, err := inventory.Apply(ctx, r, t, products[item.ProductID], inventory.Entry{
				Type:      entity.MovementSalida,
				Delta:     item.Quantity.Neg(),
				Reason:    entity.ReasonSale,
				Reference: sale.Number,
				CreatedBy: userID,
				At:        now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// Cancel anula una venta COMPLETADA: marca ANULADA y devuelve al stock cada ítem con una
// fila ENTRADA. La devolución es relativa al stock actual, no a un snapshot.
// Una venta ya anulada devuelve domain.ErrAlreadyCancelled sin modificar nada.
func (uc *UseCase) Cancel(ctx context.Context, t tenant.ID, userID, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.Action != ActionCancel {
		return nil, domain.Invalid("action", "acción no soportada")
	}
	var sale *entity.Sale
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		sale, err = r.Sales.GetForUpdate(ctx, t, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		switch sale.Status {
		case entity.SaleStatusCompleted:
		case entity.SaleStatusCancelled:
			return domain.ErrAlreadyCancelled
		default:
			return fmt.Errorf("venta en estado %s: %w", sale.Status, domain.ErrInvalidTransition)
		}

		ids := make([]string, 0, len(sale.Items))
		for _, it := range sale.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := lockProducts(ctx, r, t, ids)
		if err != nil {
			return err
		}

		now := uc.now()
		sale.Status = entity.SaleStatusCancelled
		sale.Notes = appendNote(sale.Notes, cancelNote(in.Reason))
		sale.UpdatedAt = now
		if err := r.Sales.UpdateStatus(ctx, t, sale.ID, sale.Status, sale.Notes); err != nil {
			return err
		}
		for _, item := range sale.Items {
			_, err := inventory.Apply(ctx, r, t, products[item.ProductID], inventory.Entry{
				Type:      entity.MovementEntrada,
				Delta:     item.Quantity,
				Reason:    entity.ReasonCancellation,
				Reference: sale.Number,
				CreatedBy: userID,
				At:        now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// GetByID obtiene una venta con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, t tenant.ID, id string) (*dto.SaleResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	sale, err := uc.repos.Sales.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return ToSaleResponse(sale), nil
}

// List lista ventas del tenant, más recientes primero.
func (uc *UseCase) List(ctx context.Context, t tenant.ID, in dto.SaleFilterRequest) (*dto.SaleListResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, total, err := uc.repos.Sales.List(ctx, t, repository.SaleFilter{
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		ClientID:      in.ClientID,
		NumberPrefix:  strings.ToUpper(strings.TrimSpace(in.Number)),
		From:          in.From,
		To:            in.To,
		Page:          repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// lockProducts bloquea los productos referenciados (sin repetir, orden ascendente) y
// falla con ErrNotFound si alguno no pertenece al tenant.
func lockProducts(ctx context.Context, r ports.Repos, t tenant.ID, ids []string) (map[string]*entity.Product, error) {
	uniq := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	sorted := make([]string, 0, len(uniq))
	for id := range uniq {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	list, err := r.Products.GetManyForUpdate(ctx, t, sorted)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	for _, id := range sorted {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
	}
	return byID, nil
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cancelNote(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "ANULADA"
	}
	return "ANULADA: " + reason
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}

// ToSaleResponse convierte una venta al DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		ClientID:      s.ClientID,
		DocumentType:  s.DocumentType,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		AmountPaid:    s.AmountPaid,
		Change:        s.Change,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}
