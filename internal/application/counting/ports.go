package counting

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del flujo de inventario físico. Validar una sesión aplica
// todos los movimientos de conciliación en una sola transacción.
type TxRunner interface {
	RunCounting(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
		sessionRepo repository.InventorySessionRepository,
	) error) error
}
