package entity

import "time"

// Motivos de ajuste manual.
const (
	AdjustReasonCorrection     = "CORRECTION"
	AdjustReasonDamaged        = "DAMAGED"
	AdjustReasonLost           = "LOST"
	AdjustReasonFound          = "FOUND"
	AdjustReasonInventoryCount = "INVENTORY_COUNT"
)

// Adjustment ajuste manual auditado de la cantidad de un producto en una
// tienda. Siempre emparejado 1:1 con exactamente un asiento del libro.
type Adjustment struct {
	ID               string
	AdjustmentNumber string
	CompanyID        string
	ShopID           string
	ProductID        string
	QuantityBefore   int64
	QuantityChange   int64 // nueva cantidad - cantidad anterior (con signo)
	QuantityAfter    int64
	Reason           string
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
}

// ValidAdjustReason verifica que el motivo sea conocido.
func ValidAdjustReason(reason string) bool {
	switch reason {
	case AdjustReasonCorrection, AdjustReasonDamaged, AdjustReasonLost,
		AdjustReasonFound, AdjustReasonInventoryCount:
		return true
	}
	return false
}
