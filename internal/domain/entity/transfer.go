package entity

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Estados del traslado entre tiendas.
const (
	TransferPENDING   = "PENDING"    // propuesta, sin efecto en stock
	TransferAPPROVED  = "APPROVED"   // aprobado, aún sin efecto en stock
	TransferINTRANSIT = "IN_TRANSIT" // despachado: la tienda origen ya descontó
	TransferCOMPLETED = "COMPLETED"  // recibido: la tienda destino ya sumó (terminal)
	TransferCANCELLED = "CANCELLED"  // cancelado antes del despacho (terminal)
)

// Acciones sobre un traslado.
const (
	TransferActionApprove = "APPROVE"
	TransferActionShip    = "SHIP"
	TransferActionReceive = "RECEIVE"
	TransferActionCancel  = "CANCEL"
)

// transferTransitions es la tabla explícita de transiciones:
// estado actual × acción → estado siguiente. Toda transición que no aparece
// aquí es ilegal y se rechaza con ErrInvalidTransferTransition por un único
// guard central (NextTransferStatus), no por checks dispersos por acción.
var transferTransitions = map[string]map[string]string{
	TransferPENDING: {
		TransferActionApprove: TransferAPPROVED,
		TransferActionCancel:  TransferCANCELLED,
	},
	TransferAPPROVED: {
		TransferActionShip:   TransferINTRANSIT,
		TransferActionCancel: TransferCANCELLED,
	},
	TransferINTRANSIT: {
		TransferActionReceive: TransferCOMPLETED,
	},
	// COMPLETED y CANCELLED son terminales: sin transiciones de salida.
}

// NextTransferStatus devuelve el estado resultante de aplicar una acción.
// Falla con ErrInvalidTransferTransition si la tabla no la permite.
func NextTransferStatus(current, action string) (string, error) {
	next, ok := transferTransitions[current][action]
	if !ok {
		return "", domain.ErrInvalidTransferTransition
	}
	return next, nil
}

// TransferLine línea de un traslado: un producto y sus cantidades en cada etapa.
// Las líneas pertenecen exclusivamente a su Transfer y no se mutan fuera del
// ciclo de vida del padre.
type TransferLine struct {
	ID                string
	TransferID        string
	ProductID         string
	QuantityRequested int64
	QuantityShipped   *int64 // nulo hasta el despacho
	QuantityReceived  *int64 // nulo hasta la recepción
}

// Transfer traslado de mercancía entre dos tiendas con máquina de estados.
// El stock de la tienda origen se descuenta exactamente al despachar y el de
// la destino se suma exactamente al recibir; el intervalo entre ambos pasos
// lo representa el estado IN_TRANSIT.
type Transfer struct {
	ID             string
	TransferNumber string
	CompanyID      string
	FromShopID     string
	ToShopID       string
	Status         string
	Notes          string
	RequestedBy    string
	RequestedAt    time.Time
	ApprovedBy     string
	ApprovedAt     *time.Time
	ShippedAt      *time.Time
	ReceivedBy     string
	ReceivedAt     *time.Time
	Lines          []*TransferLine
}

// Apply valida la acción contra la tabla de transiciones y muta el estado.
func (t *Transfer) Apply(action string) error {
	next, err := NextTransferStatus(t.Status, action)
	if err != nil {
		return err
	}
	t.Status = next
	return nil
}
