// Package cashregister gestiona la sesión de caja del tenant: apertura, estado y arqueo de cierre.
package cashregister

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/cash"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/sales"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso de caja.
type UseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, repos ports.Repos) *UseCase {
	return &UseCase{tx: tx, repos: repos, now: time.Now}
}

// Open abre una sesión. Falla con domain.ErrCashRegisterOpen si ya hay una abierta
// (el índice único parcial lo garantiza también ante peticiones concurrentes).
func (uc *UseCase) Open(ctx context.Context, t tenant.ID, userID string, in dto.OpenCashRegisterRequest) (*dto.CashRegisterResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.OpeningAmount.IsNegative() {
		return nil, domain.Invalid("openingAmount", "no puede ser negativo")
	}
	open, err := uc.repos.CashRegisters.GetOpen(ctx, t)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrCashRegisterOpen
	}
	reg := &entity.CashRegister{
		ID:            uuid.New().String(),
		TenantID:      t.String(),
		OpeningAmount: in.OpeningAmount.Round(2),
		OpenedAt:      uc.now(),
		OpenedBy:      userID,
		Notes:         strings.TrimSpace(in.Notes),
	}
	if err := uc.repos.CashRegisters.Create(ctx, t, reg); err != nil {
		return nil, err
	}
	return ToCashRegisterResponse(reg), nil
}

// Status devuelve la sesión abierta con las ventas COMPLETADA desde la apertura,
// agrupadas por método de pago, y el efectivo esperado en caja.
func (uc *UseCase) Status(ctx context.Context, t tenant.ID) (*dto.CashRegisterStatusResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	reg, err := uc.repos.CashRegisters.GetOpen(ctx, t)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return &dto.CashRegisterStatusResponse{Open: false, ByMethod: []dto.PaymentMethodTotal{}}, nil
	}
	totals, err := uc.repos.Sales.TotalsByPaymentMethod(ctx, t, reg.OpenedAt)
	if err != nil {
		return nil, err
	}
	out := summarize(totals)
	out.Open = true
	out.Register = ToCashRegisterResponse(reg)
	out.ExpectedAmount = cash.Expected(reg.OpeningAmount, cashTotal(totals))
	return out, nil
}

// Close cierra la sesión abierta con el monto contado y persiste el arqueo.
// Sin sesión abierta devuelve domain.ErrNoOpenCashRegister.
func (uc *UseCase) Close(ctx context.Context, t tenant.ID, userID string, in dto.CloseCashRegisterRequest) (*dto.CashRegisterResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.ClosingAmount.IsNegative() {
		return nil, domain.Invalid("closingAmount", "no puede ser negativo")
	}
	var reg *entity.CashRegister
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		reg, err = r.CashRegisters.GetOpenForUpdate(ctx, t)
		if err != nil {
			return err
		}
		if reg == nil {
			return domain.ErrNoOpenCashRegister
		}
		totals, err := r.Sales.TotalsByPaymentMethod(ctx, t, reg.OpenedAt)
		if err != nil {
			return err
		}
		rec := cash.Reconcile(reg.OpeningAmount, cashTotal(totals), in.ClosingAmount.Round(2))
		now := uc.now()
		reg.ClosedAt = &now
		reg.ClosedBy = userID
		reg.ClosingAmount = &rec.Closing
		reg.ExpectedAmount = &rec.Expected
		reg.Difference = &rec.Difference
		reg.Classification = rec.Classification
		if note := strings.TrimSpace(in.Notes); note != "" {
			if reg.Notes != "" {
				reg.Notes += "\n"
			}
			reg.Notes += note
		}
		return r.CashRegisters.Close(ctx, t, reg)
	})
	if err != nil {
		return nil, err
	}
	return ToCashRegisterResponse(reg), nil
}

// History lista las sesiones cerradas, más recientes primero.
func (uc *UseCase) History(ctx context.Context, t tenant.ID, page dto.PageRequest) (*dto.CashRegisterListResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, total, err := uc.repos.CashRegisters.ListClosed(ctx, t, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashRegisterResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToCashRegisterResponse(c))
	}
	return &dto.CashRegisterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// cashTotal solo las ventas en efectivo cuentan para el arqueo físico.
func cashTotal(totals []repository.PaymentTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, pt := range totals {
		if pt.Method == sales.PaymentCash {
			sum = sum.Add(pt.Total)
		}
	}
	return sum
}

func summarize(totals []repository.PaymentTotal) *dto.CashRegisterStatusResponse {
	out := &dto.CashRegisterStatusResponse{SalesTotal: decimal.Zero, ByMethod: make([]dto.PaymentMethodTotal, 0, len(totals))}
	for _, pt := range totals {
		out.SalesCount += pt.Count
		out.SalesTotal = out.SalesTotal.Add(pt.Total)
		out.ByMethod = append(out.ByMethod, dto.PaymentMethodTotal{Method: pt.Method, Count: pt.Count, Total: pt.Total})
	}
	return out
}

// ToCashRegisterResponse convierte una sesión al DTO.
func ToCashRegisterResponse(c *entity.CashRegister) *dto.CashRegisterResponse {
	if c == nil {
		return nil
	}
	return &dto.CashRegisterResponse{
		ID:             c.ID,
		OpeningAmount:  c.OpeningAmount,
		OpenedAt:       c.OpenedAt,
		OpenedBy:       c.OpenedBy,
		ClosedAt:       c.ClosedAt,
		ClosedBy:       c.ClosedBy,
		ClosingAmount:  c.ClosingAmount,
		ExpectedAmount: c.ExpectedAmount,
		Difference:     c.Difference,
		Classification: c.Classification,
		Notes:          c.Notes,
	}
}
