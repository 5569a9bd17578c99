package entity

import "time"

// StockLevel representa la cantidad vigente de un producto en una tienda.
// Es la única fuente autoritativa de cantidad y siempre debe ser igual a la
// suma de los deltas de sus movimientos en el libro (ledger_entries).
// MinThreshold viene del catálogo de productos (join de lectura).
type StockLevel struct {
	ShopID       string
	ProductID    string
	Quantity     int64
	MinThreshold int64
	UpdatedAt    time.Time
}
