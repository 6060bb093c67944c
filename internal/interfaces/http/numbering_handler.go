package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/application/numbering"
)

// NumberingHandler reserva números de documentos emitidos por otros sistemas.
type NumberingHandler struct {
	uc *numbering.UseCase
}

// NewNumberingHandler construye el handler.
func NewNumberingHandler(uc *numbering.UseCase) *NumberingHandler {
	return &NumberingHandler{uc: uc}
}

// Reserve godoc
// @Summary      Reservar número de documento
// @Tags         numbering
// @Security     Bearer
// @Produce      json
// @Param        family  path  string  true  "sale | sale_note | purchase | quotation | note"
// @Success      201  {object}  dto.NumberResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/numbering/{family} [post]
func (h *NumberingHandler) Reserve(c *fiber.Ctx) error {
	out, err := h.uc.Reserve(c.UserContext(), GetTenant(c), c.Params("family"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
