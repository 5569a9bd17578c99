package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LedgerRepository puerto del libro de movimientos. Solo inserta y lee:
// los asientos son inmutables, no hay Update ni Delete.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	ListByShop(shopID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
}
