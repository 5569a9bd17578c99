package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/adjustment"
	"github.com/jhoicas/Almacen-api/internal/application/alert"
	"github.com/jhoicas/Almacen-api/internal/application/counting"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC     *ledger.Service
	TransferUC   *transfer.Service
	CountingUC   *counting.Service
	AdjustmentUC *adjustment.Service
	AlertUC      *alert.Service
	JWTSecret    string
}

// Router registra las rutas de la API. Todo el subsistema de stock requiere
// Bearer Token: cada escritura del libro queda firmada por el actor del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro de stock (protegido)
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock := protected.Group("/stock")
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Post("/sales", stockHandler.RegisterSale)
	stock.Get("/:shop_id", stockHandler.ListLevels)
	stock.Get("/:shop_id/movements", stockHandler.ListEntriesByShop)
	stock.Get("/:shop_id/:product_id", stockHandler.GetQuantity)

	// Historial por producto (protegido)
	products := protected.Group("/products")
	products.Get("/:product_id/movements", stockHandler.ListEntriesByProduct)

	// Traslados entre tiendas (protegido)
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/approve", transferHandler.Approve)
	transfers.Post("/:id/ship", transferHandler.Ship)
	transfers.Post("/:id/receive", transferHandler.Receive)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	// Sesiones de inventario físico (protegido)
	countingHandler := NewCountingHandler(deps.CountingUC)
	sessions := protected.Group("/inventory-sessions")
	sessions.Post("/", countingHandler.Create)
	sessions.Get("/:id", countingHandler.GetByID)
	sessions.Post("/:id/start", countingHandler.Start)
	sessions.Post("/:id/counts", countingHandler.RecordCount)
	sessions.Post("/:id/validate", countingHandler.Validate)

	// Ajustes manuales (protegido)
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments := protected.Group("/adjustments")
	adjustments.Post("/", adjustmentHandler.Adjust)
	adjustments.Get("/:id", adjustmentHandler.GetByID)

	// Vistas por tienda (protegido)
	alertHandler := NewAlertHandler(deps.AlertUC)
	shops := protected.Group("/shops")
	shops.Get("/:shop_id/transfers", transferHandler.ListByShop)
	shops.Get("/:shop_id/inventory-sessions", countingHandler.ListByShop)
	shops.Get("/:shop_id/adjustments", adjustmentHandler.ListByShop)
	shops.Get("/:shop_id/alerts", alertHandler.ListByShop)
}
