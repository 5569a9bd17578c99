package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransferHandler maneja las peticiones HTTP de traslados entre tiendas (protegido).
type TransferHandler struct {
	uc *transfer.Service
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.Service) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado (queda en PENDING, sin efecto en stock)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Traslado"
// @Success      201   {object}  dto.TransferDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]transfer.CreateLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, transfer.CreateLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	t, err := h.uc.Create(c.Context(), transfer.CreateInput{
		CompanyID:      GetCompanyID(c),
		UserID:         GetUserID(c),
		TransferNumber: in.TransferNumber,
		FromShopID:     in.FromShopID,
		ToShopID:       in.ToShopID,
		Notes:          in.Notes,
		Lines:          lines,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferDTO(t))
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	t, err := h.uc.GetByID(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferDTO(t))
}

// ListByShop godoc
// @Summary      Listar traslados de una tienda (origen o destino)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        shop_id  path   string  true   "ID de la tienda"
// @Param        status   query  string  false  "Filtrar por estado"
// @Param        limit    query  int     false  "Límite (default 20)"
// @Param        offset   query  int     false  "Offset"
// @Success      200  {array}  dto.TransferDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shop_id}/transfers [get]
func (h *TransferHandler) ListByShop(c *fiber.Ctx) error {
	shopID := c.Params("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shop_id es requerido"})
	}
	page := parsePage(c)
	transfers, err := h.uc.ListByShop(c.Context(), GetCompanyID(c), shopID, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferDTOs(transfers))
}

// Approve godoc
// @Summary      Aprobar traslado (PENDING → APPROVED)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	return h.applyAction(c, h.uc.Approve)
}

// Ship godoc
// @Summary      Despachar traslado (APPROVED → IN_TRANSIT, descuenta origen)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/ship [post]
func (h *TransferHandler) Ship(c *fiber.Ctx) error {
	return h.applyAction(c, h.uc.Ship)
}

// Receive godoc
// @Summary      Recibir traslado (IN_TRANSIT → COMPLETED, suma destino)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.ReceiveTransferRequest  false  "Cantidades recibidas declaradas"
// @Success      200   {object}  dto.TransferDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ReceiveTransferRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	t, err := h.uc.Receive(c.Context(), GetCompanyID(c), id, GetUserID(c), transfer.ReceiveInput{
		ReceivedByLine: in.ReceivedByLine,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferDTO(t))
}

// Cancel godoc
// @Summary      Cancelar traslado (solo antes del despacho)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	return h.applyAction(c, h.uc.Cancel)
}

// applyAction factoriza las acciones sin cuerpo (approve, ship, cancel).
func (h *TransferHandler) applyAction(
	c *fiber.Ctx,
	action func(ctx context.Context, companyID, transferID, userID string) (*entity.Transfer, error),
) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	t, err := action(c.Context(), GetCompanyID(c), id, GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTransferDTO(t))
}
