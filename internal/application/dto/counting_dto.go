package dto

import "time"

// CreateSessionRequest body para POST /api/inventory-sessions.
type CreateSessionRequest struct {
	InventoryNumber string `json:"inventory_number"`
	ShopID          string `json:"shop_id"`
	Notes           string `json:"notes,omitempty"`
}

// RecordCountRequest body para POST /api/inventory-sessions/:id/counts.
type RecordCountRequest struct {
	ProductID       string `json:"product_id"`
	CountedQuantity int64  `json:"counted_quantity"`
}

// CountLineDTO línea de conteo en respuestas, con la discrepancia calculada.
type CountLineDTO struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"product_id"`
	ExpectedQuantity int64      `json:"expected_quantity"`
	CountedQuantity  *int64     `json:"counted_quantity,omitempty"`
	Discrepancy      int64      `json:"discrepancy"`
	CountedBy        string     `json:"counted_by,omitempty"`
	CountedAt        *time.Time `json:"counted_at,omitempty"`
}

// InventorySessionDTO sesión de inventario físico en respuestas.
type InventorySessionDTO struct {
	ID              string         `json:"id"`
	InventoryNumber string         `json:"inventory_number"`
	ShopID          string         `json:"shop_id"`
	Status          string         `json:"status"`
	Notes           string         `json:"notes,omitempty"`
	StartedBy       string         `json:"started_by,omitempty"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	CompletedBy     string         `json:"completed_by,omitempty"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	Lines           []CountLineDTO `json:"lines"`
}
