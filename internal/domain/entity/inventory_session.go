package entity

import "time"

// Estados de una sesión de inventario físico.
const (
	SessionDRAFT      = "DRAFT"       // creada, aún sin snapshot
	SessionINPROGRESS = "IN_PROGRESS" // snapshot tomado, conteo en curso
	SessionCOMPLETED  = "COMPLETED"   // validada (terminal)
)

// CountLine línea de conteo: cantidad esperada (snapshot al iniciar) versus
// cantidad contada físicamente. Pertenece exclusivamente a su sesión.
type CountLine struct {
	ID               string
	SessionID        string
	ProductID        string
	ExpectedQuantity int64
	CountedQuantity  *int64 // nulo hasta que se ingrese el conteo
	CountedBy        string
	CountedAt        *time.Time
}

// Discrepancy devuelve contado - esperado; cero si aún no hay conteo.
func (l *CountLine) Discrepancy() int64 {
	if l.CountedQuantity == nil {
		return 0
	}
	return *l.CountedQuantity - l.ExpectedQuantity
}

// InventorySession sesión de inventario físico de una tienda. El snapshot de
// cantidades esperadas se toma una sola vez al iniciar y nunca se recalcula:
// las ventas durante el conteo ya generan sus propios asientos y no deben
// contarse dos veces en la conciliación.
type InventorySession struct {
	ID              string
	InventoryNumber string
	CompanyID       string
	ShopID          string
	Status          string
	Notes           string
	StartedBy       string
	StartedAt       *time.Time
	CompletedBy     string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	Lines           []*CountLine
}
