package domain

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	ErrAlreadyCancelled   = fmt.Errorf("la venta ya está anulada: %w", ErrConflict)
	ErrCashRegisterOpen   = fmt.Errorf("ya existe una caja abierta: %w", ErrConflict)
	ErrNoOpenCashRegister = fmt.Errorf("no hay caja abierta para cerrar: %w", ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("transición de estado no permitida: %w", ErrConflict)
	ErrPendingAlertExists = fmt.Errorf("ya existe una alerta pendiente para el producto: %w", ErrConflict)
)

// ValidationError describe un campo de entrada inválido. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// QuantityScale decimales admitidos en cantidades (NUMERIC(14,3)).
const QuantityScale = 3

// ValidQuantityScale reporta si q cabe en QuantityScale decimales sin redondear.
func ValidQuantityScale(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale))
}

// InsufficientStockError indica el producto que no alcanza y el stock disponible.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %s, disponible %s",
		e.ProductName, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PendingAlertError se devuelve al crear una alerta manual cuando el producto ya
// tiene una PENDING; Existing es esa alerta.
type PendingAlertError struct {
	Existing *entity.ReorderAlert
}

func (e *PendingAlertError) Error() string { return ErrPendingAlertExists.Error() }

func (e *PendingAlertError) Unwrap() error { return ErrPendingAlertExists }
