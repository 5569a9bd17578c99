package dto

import "time"

// CreateTransferLineRequest línea solicitada en un traslado.
type CreateTransferLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	TransferNumber string                      `json:"transfer_number"`
	FromShopID     string                      `json:"from_shop_id"`
	ToShopID       string                      `json:"to_shop_id"`
	Notes          string                      `json:"notes,omitempty"`
	Lines          []CreateTransferLineRequest `json:"lines"`
}

// ReceiveTransferRequest body para POST /api/transfers/:id/receive.
// received_by_line es opcional: línea → cantidad recibida declarada; las
// líneas ausentes se reciben completas.
type ReceiveTransferRequest struct {
	ReceivedByLine map[string]int64 `json:"received_by_line,omitempty"`
}

// TransferLineDTO línea de traslado en respuestas.
type TransferLineDTO struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	QuantityRequested int64  `json:"quantity_requested"`
	QuantityShipped   *int64 `json:"quantity_shipped,omitempty"`
	QuantityReceived  *int64 `json:"quantity_received,omitempty"`
}

// TransferDTO traslado en respuestas.
type TransferDTO struct {
	ID             string            `json:"id"`
	TransferNumber string            `json:"transfer_number"`
	FromShopID     string            `json:"from_shop_id"`
	ToShopID       string            `json:"to_shop_id"`
	Status         string            `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	RequestedBy    string            `json:"requested_by"`
	RequestedAt    time.Time         `json:"requested_at"`
	ApprovedBy     string            `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time        `json:"approved_at,omitempty"`
	ShippedAt      *time.Time        `json:"shipped_at,omitempty"`
	ReceivedBy     string            `json:"received_by,omitempty"`
	ReceivedAt     *time.Time        `json:"received_at,omitempty"`
	Lines          []TransferLineDTO `json:"lines"`
}
