package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementINITIAL         = "INITIAL"         // stock inicial al dar de alta
	MovementSALE            = "SALE"            // venta POS
	MovementADJUSTMENT_IN   = "ADJUSTMENT_IN"   // ajuste manual positivo
	MovementADJUSTMENT_OUT  = "ADJUSTMENT_OUT"  // ajuste manual negativo
	MovementTRANSFER_OUT    = "TRANSFER_OUT"    // salida por traslado (tienda origen)
	MovementTRANSFER_IN     = "TRANSFER_IN"     // entrada por traslado (tienda destino)
	MovementCOUNT_RECONCILE = "COUNT_RECONCILE" // conciliación de conteo físico
	MovementIMPORT          = "IMPORT"          // carga masiva (CSV)
)

// Tipos de referencia al documento que originó el movimiento.
const (
	ReferenceSale       = "SALE"
	ReferenceTransfer   = "TRANSFER"
	ReferenceAdjustment = "ADJUSTMENT"
	ReferenceInventory  = "INVENTORY_SESSION"
	ReferenceImport     = "IMPORT"
)

// LedgerEntry es un asiento inmutable del libro de stock: un cambio de cantidad
// para un par (tienda, producto). Nunca se actualiza ni se borra; una corrección
// se hace agregando un movimiento igual y opuesto.
type LedgerEntry struct {
	ID            string
	ShopID        string
	ProductID     string
	Delta         int64  // positivo = entrada, negativo = salida
	Kind          string // MovementXXX
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedBy     string // UserID del actor
	CreatedAt     time.Time
}

// ValidMovementKind verifica que el tipo de movimiento sea conocido.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementINITIAL, MovementSALE, MovementADJUSTMENT_IN, MovementADJUSTMENT_OUT,
		MovementTRANSFER_OUT, MovementTRANSFER_IN, MovementCOUNT_RECONCILE, MovementIMPORT:
		return true
	}
	return false
}
