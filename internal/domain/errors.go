package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                  = errors.New("recurso no encontrado")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrDuplicate                 = errors.New("recurso duplicado")
	ErrForbidden                 = errors.New("acceso denegado")
	ErrConflict                  = errors.New("conflicto con el estado actual")
	ErrInsufficientStock         = errors.New("stock insuficiente")
	ErrInvalidTransferTransition = errors.New("transición de traslado no permitida")
	ErrSameShopTransfer          = errors.New("tienda origen y destino deben ser distintas")
	ErrEmptyShopInventory        = errors.New("la tienda no tiene stock rastreado")
	ErrNoOpAdjustment            = errors.New("el ajuste no cambia la cantidad")
	ErrLedgerWriteFailed         = errors.New("fallo al escribir en el libro de movimientos")
)

// InsufficientStockError lleva el contexto que el operador necesita para
// corregir la acción: tienda, producto, cantidad pedida y disponible.
// errors.Is(err, ErrInsufficientStock) sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	ShopID    string
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: tienda=%s producto=%s solicitado=%d disponible=%d",
		e.ShopID, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
