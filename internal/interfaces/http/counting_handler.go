package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/counting"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// CountingHandler maneja las peticiones HTTP de sesiones de inventario físico (protegido).
type CountingHandler struct {
	uc *counting.Service
}

// NewCountingHandler construye el handler.
func NewCountingHandler(uc *counting.Service) *CountingHandler {
	return &CountingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sesión de inventario físico (DRAFT)
// @Tags         inventory-sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "Sesión"
// @Success      201   {object}  dto.InventorySessionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-sessions [post]
func (h *CountingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.Create(c.Context(), counting.CreateInput{
		CompanyID:       GetCompanyID(c),
		UserID:          GetUserID(c),
		InventoryNumber: in.InventoryNumber,
		ShopID:          in.ShopID,
		Notes:           in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionDTO(session))
}

// Start godoc
// @Summary      Iniciar sesión: toma el snapshot y pasa a IN_PROGRESS
// @Tags         inventory-sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.InventorySessionDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory-sessions/{id}/start [post]
func (h *CountingHandler) Start(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	session, err := h.uc.Start(c.Context(), GetCompanyID(c), id, GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toSessionDTO(session))
}

// RecordCount godoc
// @Summary      Registrar (o corregir) el conteo de un producto
// @Tags         inventory-sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.RecordCountRequest  true  "Conteo"
// @Success      200   {object}  dto.CountLineDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-sessions/{id}/counts [post]
func (h *CountingHandler) RecordCount(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	line, err := h.uc.RecordCount(c.Context(), GetCompanyID(c), id, in.ProductID, in.CountedQuantity, GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toCountLineDTO(line))
}

// Validate godoc
// @Summary      Validar sesión: concilia discrepancias y pasa a COMPLETED
// @Tags         inventory-sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.InventorySessionDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory-sessions/{id}/validate [post]
func (h *CountingHandler) Validate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	session, err := h.uc.Validate(c.Context(), GetCompanyID(c), id, GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toSessionDTO(session))
}

// GetByID godoc
// @Summary      Obtener sesión por ID
// @Tags         inventory-sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.InventorySessionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory-sessions/{id} [get]
func (h *CountingHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	session, err := h.uc.GetByID(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toSessionDTO(session))
}

// ListByShop godoc
// @Summary      Listar sesiones de una tienda
// @Tags         inventory-sessions
// @Security     Bearer
// @Produce      json
// @Param        shop_id  path   string  true   "ID de la tienda"
// @Param        status   query  string  false  "Filtrar por estado"
// @Param        limit    query  int     false  "Límite (default 20)"
// @Param        offset   query  int     false  "Offset"
// @Success      200  {array}  dto.InventorySessionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shop_id}/inventory-sessions [get]
func (h *CountingHandler) ListByShop(c *fiber.Ctx) error {
	shopID := c.Params("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shop_id es requerido"})
	}
	page := parsePage(c)
	sessions, err := h.uc.ListByShop(c.Context(), GetCompanyID(c), shopID, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toSessionDTOs(sessions))
}
