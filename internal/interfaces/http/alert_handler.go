package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/application/alerts"
	"github.com/jhoicas/Retail-api/internal/application/dto"
)

// AlertHandler alertas de reposición (protegido).
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// Evaluate godoc
// @Summary      Evaluar productos y generar alertas
// @Description  Sin productIds evalúa todo el catálogo activo. Nunca crea dos alertas PENDING para un producto.
// @Tags         reorder-alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EvaluateAlertsRequest  false  "Productos a evaluar"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reorder-alerts/evaluate [post]
func (h *AlertHandler) Evaluate(c *fiber.Ctx) error {
	var in dto.EvaluateAlertsRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	created, err := h.uc.Evaluate(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"created": len(created),
		"items":   created,
	})
}

// Create godoc
// @Summary      Crear alerta manual
// @Tags         reorder-alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlertRequest  true  "Producto y tipo"
// @Success      201   {object}  dto.AlertResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "PENDING_ALERT_EXISTS (details = alerta existente)"
// @Router       /api/reorder-alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlertRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener alerta
// @Tags         reorder-alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorder-alerts/{id} [get]
func (h *AlertHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetTenant(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar alertas
// @Tags         reorder-alerts
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Estado"
// @Param        type       query  string  false  "Tipo"
// @Param        productId  query  string  false  "Producto"
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/reorder-alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var in dto.AlertFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar estado de alerta
// @Description  PENDING→ACKNOWLEDGED|ORDERED, ACKNOWLEDGED→ORDERED, ORDERED→RESOLVED.
// @Tags         reorder-alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la alerta"
// @Param        body  body  dto.UpdateAlertRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.AlertResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_TRANSITION"
// @Router       /api/reorder-alerts/{id} [patch]
func (h *AlertHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAlertRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
