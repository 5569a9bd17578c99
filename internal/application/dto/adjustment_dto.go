package dto

import "time"

// AdjustStockRequest body para POST /api/adjustments. new_quantity es la
// cantidad objetivo observada, no el delta.
type AdjustStockRequest struct {
	AdjustmentNumber string `json:"adjustment_number"`
	ShopID           string `json:"shop_id"`
	ProductID        string `json:"product_id"`
	NewQuantity      int64  `json:"new_quantity"`
	Reason           string `json:"reason"`
	Notes            string `json:"notes,omitempty"`
}

// AdjustmentDTO ajuste manual en respuestas.
type AdjustmentDTO struct {
	ID               string    `json:"id"`
	AdjustmentNumber string    `json:"adjustment_number"`
	ShopID           string    `json:"shop_id"`
	ProductID        string    `json:"product_id"`
	QuantityBefore   int64     `json:"quantity_before"`
	QuantityChange   int64     `json:"quantity_change"`
	QuantityAfter    int64     `json:"quantity_after"`
	Reason           string    `json:"reason"`
	Notes            string    `json:"notes,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}
