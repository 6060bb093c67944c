package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/application/cashregister"
	"github.com/jhoicas/Retail-api/internal/application/dto"
)

// CashRegisterHandler apertura, estado y cierre de caja (protegido).
type CashRegisterHandler struct {
	uc *cashregister.UseCase
}

// NewCashRegisterHandler construye el handler.
func NewCashRegisterHandler(uc *cashregister.UseCase) *CashRegisterHandler {
	return &CashRegisterHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir caja
// @Tags         cash-register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashRegisterRequest  true  "Monto inicial"
// @Success      201   {object}  dto.CashRegisterResponse
// @Failure      409   {object}  dto.ErrorResponse  "CASH_REGISTER_OPEN"
// @Router       /api/cash-register/open [post]
func (h *CashRegisterHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCashRegisterRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Open(c.UserContext(), GetTenant(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar caja (arqueo)
// @Tags         cash-register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseCashRegisterRequest  true  "Efectivo contado"
// @Success      200   {object}  dto.CashRegisterResponse
// @Failure      409   {object}  dto.ErrorResponse  "NO_OPEN_CASH_REGISTER"
// @Router       /api/cash-register/close [post]
func (h *CashRegisterHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseCashRegisterRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Close(c.UserContext(), GetTenant(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de la caja abierta
// @Tags         cash-register
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashRegisterStatusResponse
// @Router       /api/cash-register/status [get]
func (h *CashRegisterHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.UserContext(), GetTenant(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de cierres
// @Tags         cash-register
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.CashRegisterListResponse
// @Router       /api/cash-register/history [get]
func (h *CashRegisterHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	out, err := h.uc.History(c.UserContext(), GetTenant(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
