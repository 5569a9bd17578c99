package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository puerto de lectura del catálogo de productos.
// El catálogo lo administra otro sistema; aquí solo se consulta.
type ProductRepository interface {
	// GetByID devuelve el producto; nil si no existe.
	GetByID(id string) (*entity.Product, error)
}
