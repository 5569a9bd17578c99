package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL
// (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, adjustment_number, company_id, shop_id, product_id,
	quantity_before, quantity_change, quantity_after, reason, notes, created_by, created_at`

// Create persiste un ajuste manual.
// adjustment_number es único: una colisión devuelve ErrDuplicate.
func (r *AdjustmentRepo) Create(a *entity.Adjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.AdjustmentNumber, a.CompanyID, a.ShopID, a.ProductID,
		a.QuantityBefore, a.QuantityChange, a.QuantityAfter, a.Reason, a.Notes,
		nullable(a.CreatedBy), a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID; nil si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE id = $1`
	a, err := scanAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

// ListByShop lista los ajustes de una tienda, más reciente primero.
func (r *AdjustmentRepo) ListByShop(shopID string, limit, offset int) ([]*entity.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + ` FROM adjustments
		WHERE shop_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments by shop: %w", err)
	}
	defer rows.Close()
	var list []*entity.Adjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	var createdBy *string
	err := row.Scan(
		&a.ID, &a.AdjustmentNumber, &a.CompanyID, &a.ShopID, &a.ProductID,
		&a.QuantityBefore, &a.QuantityChange, &a.QuantityAfter, &a.Reason, &a.Notes,
		&createdBy, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		a.CreatedBy = *createdBy
	}
	return &a, nil
}
