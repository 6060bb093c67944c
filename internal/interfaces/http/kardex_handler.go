package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// KardexHandler movimientos de stock (protegido).
type KardexHandler struct {
	uc *inventory.KardexUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *inventory.KardexUseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual
// @Description  ENTRADA/SALIDA con quantity > 0; AJUSTE con quantity = stock objetivo; TRANSFERENCIA con quantity con signo.
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kardex [post]
func (h *KardexHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterMovement(c.UserContext(), GetTenant(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *KardexHandler) filter(c *fiber.Ctx) (dto.MovementFilterRequest, bool, error) {
	var in dto.MovementFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return in, false, err
	}
	from, to, err := dateRange(c)
	if err != nil {
		return in, false, writeError(c, err)
	}
	in.From, in.To = from, to
	return in, true, nil
}

// List godoc
// @Summary      Consultar kardex
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Producto"
// @Param        type       query  string  false  "Tipo de movimiento"
// @Param        from       query  string  false  "Desde"
// @Param        to         query  string  false  "Hasta"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/kardex [get]
func (h *KardexHandler) List(c *fiber.Ctx) error {
	in, ok, err := h.filter(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar kardex a Excel
// @Tags         kardex
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productId  query  string  false  "Producto"
// @Param        type       query  string  false  "Tipo de movimiento"
// @Param        from       query  string  false  "Desde"
// @Param        to         query  string  false  "Hasta"
// @Success      200  {file}  file
// @Router       /api/kardex/export [get]
func (h *KardexHandler) Export(c *fiber.Ctx) error {
	in, ok, err := h.filter(c)
	if !ok {
		return err
	}
	var buf bytes.Buffer
	if err := h.uc.Export(c.UserContext(), GetTenant(c), in, &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="kardex-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}

// ProductKardex godoc
// @Summary      Kardex de un producto
// @Description  Producto, últimos movimientos y si el stock coincide con el último movimiento.
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "Movimientos a devolver"  default(20)
// @Success      200  {object}  dto.ProductKardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/products/{id} [get]
func (h *KardexHandler) ProductKardex(c *fiber.Ctx) error {
	out, err := h.uc.ProductKardex(c.UserContext(), GetTenant(c), c.Params("id"), c.QueryInt("limit", 20))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
