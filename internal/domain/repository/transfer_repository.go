package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// TransferRepository puerto de persistencia de traslados y sus líneas.
// Las líneas se crean junto con el padre y solo se mutan vía UpdateLine
// dentro de la misma transacción que cambia el estado del padre.
type TransferRepository interface {
	// Create persiste el traslado y todas sus líneas.
	Create(transfer *entity.Transfer) error
	// GetByID devuelve el traslado con líneas; nil si no existe.
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila del traslado (SELECT FOR UPDATE) y carga
	// las líneas; evita que dos acciones concurrentes transicionen a la vez.
	GetForUpdate(id string) (*entity.Transfer, error)
	// Update persiste estado y marcas de tiempo/actores del encabezado.
	Update(transfer *entity.Transfer) error
	// UpdateLine persiste cantidades despachadas/recibidas de una línea.
	UpdateLine(line *entity.TransferLine) error
	ListByShop(shopID string, status string, limit, offset int) ([]*entity.Transfer, error)
}
