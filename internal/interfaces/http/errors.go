package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/application/alerts"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/rs/zerolog"
)

// InsufficientStockDetails cuerpo de details para INSUFFICIENT_STOCK.
type InsufficientStockDetails struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Requested   string `json:"requested"`
	Available   string `json:"available"`
}

// writeError traduce errores de dominio a HTTP. Lo que no pertenece a la taxonomía
// se registra y se responde como 500 sin detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	var (
		fieldErrs validator.ValidationErrors
		invalid   *domain.ValidationError
		stock     *domain.InsufficientStockError
		pending   *domain.PendingAlertError
	)
	switch {
	case errors.As(err, &fieldErrs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: validationFields(fieldErrs),
		})
	case errors.As(err, &stock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: stock.Error(),
			Details: InsufficientStockDetails{
				ProductID:   stock.ProductID,
				ProductName: stock.ProductName,
				Requested:   stock.Requested.String(),
				Available:   stock.Available.String(),
			},
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.As(err, &invalid):
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
		if invalid.Field != "" {
			resp.Fields = map[string]string{invalid.Field: invalid.Reason}
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant requerido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.As(err, &pending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "PENDING_ALERT_EXISTS", Message: err.Error(), Details: alerts.ToAlertResponse(pending.Existing),
		})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: conflictCode(err), Message: err.Error()})
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func conflictCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return "ALREADY_CANCELLED"
	case errors.Is(err, domain.ErrCashRegisterOpen):
		return "CASH_REGISTER_OPEN"
	case errors.Is(err, domain.ErrNoOpenCashRegister):
		return "NO_OPEN_CASH_REGISTER"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrPendingAlertExists):
		return "PENDING_ALERT_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return "DUPLICATE"
	default:
		return "CONFLICT"
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
