package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/alert"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	domainalert "github.com/jhoicas/Almacen-api/internal/domain/alert"
)

// AlertHandler maneja las peticiones HTTP de alertas de stock (protegido).
type AlertHandler struct {
	uc *alert.Service
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alert.Service) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// ListByShop godoc
// @Summary      Alertas de stock de una tienda (recalculadas al momento)
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        shop_id  path   string  true   "ID de la tienda"
// @Param        level    query  string  false  "Filtrar: OK, LOW, CRITICAL, OUT_OF_STOCK"
// @Success      200  {array}  dto.StockAlertDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shop_id}/alerts [get]
func (h *AlertHandler) ListByShop(c *fiber.Ctx) error {
	shopID := c.Params("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shop_id es requerido"})
	}
	level := c.Query("level")
	if level != "" && !domainalert.ValidLevel(level) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "level desconocido"})
	}
	alerts, err := h.uc.ListByShop(c.Context(), GetCompanyID(c), shopID, level)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(alerts)
}
