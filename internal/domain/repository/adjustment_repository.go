package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AdjustmentRepository puerto de persistencia de ajustes manuales.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	ListByShop(shopID string, limit, offset int) ([]*entity.Adjustment, error)
}
