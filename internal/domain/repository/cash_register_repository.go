package repository

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

// CashRegisterRepository puerto de sesiones de caja.
type CashRegisterRepository interface {
	// Create devuelve domain.ErrCashRegisterOpen si el tenant ya tiene una sesión abierta.
	Create(ctx context.Context, t tenant.ID, register *entity.CashRegister) error
	// GetOpen devuelve (nil, nil) si no hay sesión abierta.
	GetOpen(ctx context.Context, t tenant.ID) (*entity.CashRegister, error)
	GetOpenForUpdate(ctx context.Context, t tenant.ID) (*entity.CashRegister, error)
	// Close persiste el arqueo; solo afecta a la sesión si sigue abierta.
	Close(ctx context.Context, t tenant.ID, register *entity.CashRegister) error
	// ListClosed devuelve la página pedida y el total de sesiones cerradas.
	ListClosed(ctx context.Context, t tenant.ID, p Page) ([]*entity.CashRegister, int, error)
}
