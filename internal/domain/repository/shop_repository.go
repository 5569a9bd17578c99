package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ShopRepository puerto de lectura de tiendas (administradas por otro sistema).
type ShopRepository interface {
	// GetByID devuelve la tienda; nil si no existe.
	GetByID(id string) (*entity.Shop, error)
	ListByCompany(companyID string) ([]*entity.Shop, error)
}
