package dto

import "time"

// RegisterMovementRequest body para POST /api/stock/movements.
// Para ventas POS usar POST /api/stock/sales; este endpoint cubre INITIAL,
// IMPORT y movimientos directos del libro.
type RegisterMovementRequest struct {
	ShopID        string `json:"shop_id"`
	ProductID     string `json:"product_id"`
	Delta         int64  `json:"delta"`
	Kind          string `json:"kind"`
	ReferenceType string `json:"reference_type,omitempty"`
	ReferenceID   string `json:"reference_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// SaleLineRequest línea vendida.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RegisterSaleRequest body para POST /api/stock/sales (descuento por venta POS).
type RegisterSaleRequest struct {
	ShopID string            `json:"shop_id"`
	SaleID string            `json:"sale_id"`
	Lines  []SaleLineRequest `json:"lines"`
}

// LedgerEntryDTO asiento del libro en respuestas.
type LedgerEntryDTO struct {
	ID            string    `json:"id"`
	ShopID        string    `json:"shop_id"`
	ProductID     string    `json:"product_id"`
	Delta         int64     `json:"delta"`
	Kind          string    `json:"kind"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockLevelDTO stock vigente en respuestas.
type StockLevelDTO struct {
	ShopID       string    `json:"shop_id"`
	ProductID    string    `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	MinThreshold int64     `json:"min_threshold"`
	UpdatedAt    time.Time `json:"updated_at"`
}
