package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockLevelRepository puerto para consultar/actualizar el stock vigente por
// tienda+producto. Las mutaciones siempre ocurren dentro de una transacción.
type StockLevelRepository interface {
	// Get devuelve el stock vigente; si no existe fila, una con cantidad 0.
	Get(shopID, productID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para el ciclo
	// leer-verificar-escribir dentro de la transacción.
	GetForUpdate(shopID, productID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	// ListByShop lista todas las filas rastreadas de la tienda con el umbral
	// mínimo del catálogo (join con products).
	ListByShop(ctx context.Context, shopID string) ([]*entity.StockLevel, error)
}
