package transfer

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el flujo de traslados. Despachar y recibir tocan
// varias líneas: todos los movimientos del libro de una acción se confirman
// juntos o se revierten juntos.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
