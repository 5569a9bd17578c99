package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// InventorySessionRepository puerto de persistencia de sesiones de inventario
// físico y sus líneas de conteo.
type InventorySessionRepository interface {
	Create(session *entity.InventorySession) error
	// GetByID devuelve la sesión con líneas; nil si no existe.
	GetByID(id string) (*entity.InventorySession, error)
	// GetForUpdate bloquea la fila de la sesión y carga las líneas.
	GetForUpdate(id string) (*entity.InventorySession, error)
	Update(session *entity.InventorySession) error
	// CreateLines persiste el snapshot de líneas al iniciar la sesión.
	CreateLines(lines []*entity.CountLine) error
	// UpdateLineCount registra (o corrige) la cantidad contada de una línea.
	UpdateLineCount(line *entity.CountLine) error
	ListByShop(shopID string, status string, limit, offset int) ([]*entity.InventorySession, error)
}
