package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/application/adjustment"
	"github.com/jhoicas/Almacen-api/internal/application/counting"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos de transacción de cada caso de uso.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ transfer.TxRunner = (*TxRunner)(nil)
var _ counting.TxRunner = (*TxRunner)(nil)
var _ adjustment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a esa tx. Commit si fn devuelve nil, Rollback si no.
// Los fallos de Begin/Commit se envuelven en ErrLedgerWriteFailed: la
// operación es atómica y no dejó efecto parcial, el caller puede reintentar.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción con los repositorios mínimos del libro: stock y asientos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLevelRepository(tx), NewLedgerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	return nil
}

// RunTransfer transacción para el flujo de traslados (Create/Approve/Ship/Receive/Cancel).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLevelRepository(tx), NewLedgerRepository(tx), NewTransferRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	return nil
}

// RunCounting transacción para el flujo de inventario físico (Start/RecordCount/Validate).
func (r *TxRunner) RunCounting(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
	sessionRepo repository.InventorySessionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLevelRepository(tx), NewLedgerRepository(tx), NewInventorySessionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	return nil
}

// RunAdjustment transacción para el ajuste manual (registro + asiento).
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
	adjustmentRepo repository.AdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLevelRepository(tx), NewLedgerRepository(tx), NewAdjustmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrLedgerWriteFailed, err)
	}
	return nil
}
