package adjustment

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD: el registro
// de ajuste y su asiento en el libro se confirman juntos o fallan juntos.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
		adjustmentRepo repository.AdjustmentRepository,
	) error) error
}
