package dto

// StockAlertDTO clasificación de alerta para un (tienda, producto).
type StockAlertDTO struct {
	ShopID       string `json:"shop_id"`
	ProductID    string `json:"product_id"`
	Quantity     int64  `json:"quantity"`
	MinThreshold int64  `json:"min_threshold"`
	Shortage     int64  `json:"shortage"`
	Level        string `json:"level"` // OK | LOW | CRITICAL | OUT_OF_STOCK
}
