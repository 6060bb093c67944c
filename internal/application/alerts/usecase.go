// Package alerts implementa el motor de alertas de reposición: evaluación contra umbrales
// y la máquina de estados PENDING -> ACKNOWLEDGED/ORDERED -> RESOLVED.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/inventory"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// UseCase casos de uso de alertas.
type UseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, repos ports.Repos) *UseCase {
	return &UseCase{tx: tx, repos: repos, now: time.Now}
}

// Evaluate aplica la política de reposición a los productos indicados (o a todo el catálogo
// activo) y crea una alerta PENDING por cada producto que la requiera y no tenga ya una.
// Devuelve solo las alertas creadas.
func (uc *UseCase) Evaluate(ctx context.Context, t tenant.ID, in dto.EvaluateAlertsRequest) ([]dto.AlertResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	products, err := uc.productsToEvaluate(ctx, t, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	created := make([]dto.AlertResponse, 0)
	for _, p := range products {
		typ := inventory.EvaluateAlert(p.Stock, p.MinStock, p.ReorderPoint)
		if typ == "" {
			continue
		}
		alert := uc.newAlert(t, p, typ, "")
		ok, err := uc.repos.Alerts.CreateIfNoPending(ctx, t, alert)
		if err != nil {
			return nil, err
		}
		if ok {
			created = append(created, *ToAlertResponse(alert))
		}
	}
	return created, nil
}

func (uc *UseCase) productsToEvaluate(ctx context.Context, t tenant.ID, ids []string) ([]*entity.Product, error) {
	if len(ids) > 0 {
		out := make([]*entity.Product, 0, len(ids))
		for _, id := range ids {
			p, err := uc.repos.Products.GetByID(ctx, t, id)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
			}
			out = append(out, p)
		}
		return out, nil
	}
	var out []*entity.Product
	f := repository.ProductFilter{ActiveOnly: true, Page: repository.Page{Limit: repository.MaxLimit}}
	for {
		list, _, err := uc.repos.Products.List(ctx, t, f)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
		if len(list) < f.Limit {
			return out, nil
		}
		f.Offset += f.Limit
	}
}

// Create crea una alerta manual. Si el producto ya tiene una PENDING devuelve
// *domain.PendingAlertError con la alerta existente. Sin tipo se usa el de la política
// y, si el producto está sobre todos los umbrales, REORDER_POINT.
func (uc *UseCase) Create(ctx context.Context, t tenant.ID, in dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" {
		return nil, domain.Invalid("productId", "requerido")
	}
	p, err := uc.repos.Products.GetByID(ctx, t, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if existing, err := uc.repos.Alerts.GetPendingByProduct(ctx, t, p.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &domain.PendingAlertError{Existing: existing}
	}

	typ := in.Type
	if typ == "" {
		typ = inventory.EvaluateAlert(p.Stock, p.MinStock, p.ReorderPoint)
	}
	if typ == "" {
		typ = entity.AlertReorderPoint
	}
	switch typ {
	case entity.AlertOutOfStock, entity.AlertLowStock, entity.AlertReorderPoint:
	default:
		return nil, domain.Invalid("type", "tipo de alerta no válido")
	}

	alert := uc.newAlert(t, p, typ, strings.TrimSpace(in.Notes))
	if err := uc.repos.Alerts.Create(ctx, t, alert); err != nil {
		// Otra petición creó la PENDING entre la consulta y el insert.
		if errors.Is(err, domain.ErrPendingAlertExists) {
			existing, gerr := uc.repos.Alerts.GetPendingByProduct(ctx, t, p.ID)
			if gerr == nil && existing != nil {
				return nil, &domain.PendingAlertError{Existing: existing}
			}
		}
		return nil, err
	}
	return ToAlertResponse(alert), nil
}

// Update aplica una transición de estado. ORDERED también actualiza Product.LastOrderDate
// en la misma transacción.
func (uc *UseCase) Update(ctx context.Context, t tenant.ID, id string, in dto.UpdateAlertRequest) (*dto.AlertResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	var alert *entity.ReorderAlert
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		alert, err = r.Alerts.GetForUpdate(ctx, t, id)
		if err != nil {
			return err
		}
		if alert == nil {
			return domain.ErrNotFound
		}
		if !inventory.CanTransition(alert.Status, in.Status) {
			return fmt.Errorf("%s -> %s: %w", alert.Status, in.Status, domain.ErrInvalidTransition)
		}
		now := uc.now()
		switch in.Status {
		case entity.AlertAcknowledged:
			alert.AcknowledgedAt = &now
		case entity.AlertOrdered:
			alert.OrderedAt = &now
			if err := r.Products.SetLastOrderDate(ctx, t, alert.ProductID, now); err != nil {
				return err
			}
		case entity.AlertResolved:
			alert.ResolvedAt = &now
		}
		alert.Status = in.Status
		if in.AcknowledgedBy != "" {
			alert.AcknowledgedBy = in.AcknowledgedBy
		}
		if note := strings.TrimSpace(in.Notes); note != "" {
			alert.Notes = note
		}
		alert.UpdatedAt = now
		return r.Alerts.Update(ctx, t, alert)
	})
	if err != nil {
		return nil, err
	}
	return ToAlertResponse(alert), nil
}

// GetByID obtiene una alerta.
func (uc *UseCase) GetByID(ctx context.Context, t tenant.ID, id string) (*dto.AlertResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	a, err := uc.repos.Alerts.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return ToAlertResponse(a), nil
}

// List lista alertas con filtros tipados.
func (uc *UseCase) List(ctx context.Context, t tenant.ID, in dto.AlertFilterRequest) (*dto.AlertListResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, total, err := uc.repos.Alerts.List(ctx, t, repository.AlertFilter{
		Status:    in.Status,
		Type:      in.Type,
		ProductID: in.ProductID,
		Page:      repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func (uc *UseCase) newAlert(t tenant.ID, p *entity.Product, typ, notes string) *entity.ReorderAlert {
	now := uc.now()
	return &entity.ReorderAlert{
		ID:           uuid.New().String(),
		TenantID:     t.String(),
		ProductID:    p.ID,
		ProductName:  p.Name,
		Type:         typ,
		CurrentStock: p.Stock,
		MinStock:     p.MinStock,
		ReorderPoint: p.ReorderPoint,
		Status:       entity.AlertPending,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ToAlertResponse convierte una alerta al DTO.
func ToAlertResponse(a *entity.ReorderAlert) *dto.AlertResponse {
	if a == nil {
		return nil
	}
	return &dto.AlertResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ProductName:    a.ProductName,
		Type:           a.Type,
		CurrentStock:   a.CurrentStock,
		MinStock:       a.MinStock,
		ReorderPoint:   a.ReorderPoint,
		SuggestedQty:   inventory.SuggestedOrderQty(a.CurrentStock, a.MinStock, a.ReorderPoint),
		Status:         a.Status,
		Notes:          a.Notes,
		AcknowledgedBy: a.AcknowledgedBy,
		CreatedAt:      a.CreatedAt,
		AcknowledgedAt: a.AcknowledgedAt,
		OrderedAt:      a.OrderedAt,
		ResolvedAt:     a.ResolvedAt,
	}
}
