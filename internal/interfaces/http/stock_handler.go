package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	uc *ledger.Service
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.Service) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.LedgerEntryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.ApplyMovement(c.Context(), ledger.MovementInput{
		CompanyID:     GetCompanyID(c),
		UserID:        GetUserID(c),
		ShopID:        in.ShopID,
		ProductID:     in.ProductID,
		Delta:         in.Delta,
		Kind:          in.Kind,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryDTO(entry))
}

// RegisterSale godoc
// @Summary      Descontar stock por venta POS (todas las líneas o ninguna)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Venta"
// @Success      204   "Sin contenido"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/sales [post]
func (h *StockHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]ledger.SaleLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	err := h.uc.ApplySale(c.Context(), ledger.SaleInput{
		CompanyID: GetCompanyID(c),
		UserID:    GetUserID(c),
		ShopID:    in.ShopID,
		SaleID:    in.SaleID,
		Lines:     lines,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetQuantity godoc
// @Summary      Cantidad vigente de un producto en una tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id     path  string  true  "ID de la tienda"
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockLevelDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{shop_id}/{product_id} [get]
func (h *StockHandler) GetQuantity(c *fiber.Ctx) error {
	shopID := c.Params("shop_id")
	productID := c.Params("product_id")
	if shopID == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shop_id y product_id son requeridos"})
	}
	qty, err := h.uc.GetQuantity(c.Context(), GetCompanyID(c), shopID, productID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"shop_id": shopID, "product_id": productID, "quantity": qty})
}

// ListLevels godoc
// @Summary      Stock vigente de una tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id  path  string  true  "ID de la tienda"
// @Success      200  {array}  dto.StockLevelDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{shop_id} [get]
func (h *StockHandler) ListLevels(c *fiber.Ctx) error {
	shopID := c.Params("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shop_id es requerido"})
	}
	levels, err := h.uc.ListLevels(c.Context(), GetCompanyID(c), shopID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toStockLevelDTOs(levels))
}

// ListEntriesByShop godoc
// @Summary      Historial de movimientos de una tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        shop_id  path   string  true   "ID de la tienda"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Param        limit    query  int     false  "Límite (default 20)"
// @Param        offset   query  int     false  "Offset"
// @Success      200  {array}  dto.LedgerEntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{shop_id}/movements [get]
func (h *StockHandler) ListEntriesByShop(c *fiber.Ctx) error {
	shopID := c.Params("shop_id")
	if shopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shop_id es requerido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	page := parsePage(c)
	entries, err := h.uc.ListEntriesByShop(c.Context(), GetCompanyID(c), shopID, from, to, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toLedgerEntryDTOs(entries))
}

// ListEntriesByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true   "ID del producto"
// @Param        from        query  string  false  "Desde (RFC3339)"
// @Param        to          query  string  false  "Hasta (RFC3339)"
// @Param        limit       query  int     false  "Límite (default 20)"
// @Param        offset      query  int     false  "Offset"
// @Success      200  {array}  dto.LedgerEntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{product_id}/movements [get]
func (h *StockHandler) ListEntriesByProduct(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	page := parsePage(c)
	entries, err := h.uc.ListEntriesByProduct(c.Context(), GetCompanyID(c), productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toLedgerEntryDTOs(entries))
}

// parsePage lee limit/offset del query string con defaults.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}

// parseDateRange lee from/to (RFC3339) del query string; nil si no vienen.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
