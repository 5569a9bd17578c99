package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/adjustment"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// AdjustmentHandler maneja las peticiones HTTP de ajustes manuales (protegido).
type AdjustmentHandler struct {
	uc *adjustment.Service
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustment.Service) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar la cantidad de un producto al valor observado
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste (new_quantity es la cantidad objetivo)"
// @Success      201   {object}  dto.AdjustmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.Adjust(c.Context(), adjustment.AdjustInput{
		CompanyID:        GetCompanyID(c),
		UserID:           GetUserID(c),
		AdjustmentNumber: in.AdjustmentNumber,
		ShopID:           in.ShopID,
		ProductID:        in.ProductID,
		NewQuantity:      in.NewQuantity,
		Reason:           in.Reason,
		Notes:            in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentDTO(adj))
}

// GetByID godoc
// @Summary      Obtener ajuste por ID
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	adj, err := h.uc.GetByID(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toAdjustmentDTO(adj))
}

// ListByShop godoc
// @Summary      Listar ajustes de una tienda
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        shop_id  path   string  true   "ID de la tienda"
// @Param        limit    query  int     false  "Límite (default 20)"
// @Param        offset   query  int     false  "Offset"
// @Success      200  {array}  dto.AdjustmentDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shop_id}/adjustments [get]
func (h *AdjustmentHandler) ListByShop(c *fiber.Ctx) error {
	shopID := c.Params("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shop_id es requerido"})
	}
	page := parsePage(c)
	adjustments, err := h.uc.ListByShop(c.Context(), GetCompanyID(c), shopID, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toAdjustmentDTOs(adjustments))
}
