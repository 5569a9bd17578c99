package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el stock vigente; si no hay fila, devuelve una con cantidad 0.
func (r *StockLevelRepo) Get(shopID, productID string) (*entity.StockLevel, error) {
	query := `
		SELECT shop_id, product_id, quantity, updated_at
		FROM stock_levels WHERE shop_id = $1 AND product_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, shopID, productID).Scan(
		&l.ShopID, &l.ProductID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ShopID: shopID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para el
// ciclo leer-verificar-escribir. Dos escritores concurrentes sobre el mismo
// (tienda, producto) se serializan aquí. Si el par nunca se rastreó, primero
// materializa la fila en 0: FOR UPDATE sobre una fila ausente no bloquea nada
// y dos escritores leerían 0 a la vez, perdiendo uno de los dos movimientos.
func (r *StockLevelRepo) GetForUpdate(shopID, productID string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO stock_levels (shop_id, product_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (shop_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, shopID, productID); err != nil {
		return nil, fmt.Errorf("materialize stock level: %w", err)
	}
	query := `
		SELECT shop_id, product_id, quantity, updated_at
		FROM stock_levels WHERE shop_id = $1 AND product_id = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, shopID, productID).Scan(
		&l.ShopID, &l.ProductID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza la cantidad vigente (por tienda y producto).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (shop_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (shop_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, level.ShopID, level.ProductID, level.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByShop lista todas las filas rastreadas de la tienda con el umbral
// mínimo del catálogo (join con products).
func (r *StockLevelRepo) ListByShop(ctx context.Context, shopID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT s.shop_id, s.product_id, s.quantity, p.min_threshold, s.updated_at
		FROM stock_levels s
		JOIN products p ON p.id = s.product_id
		WHERE s.shop_id = $1
		ORDER BY p.sku`
	rows, err := r.q.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by shop: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ShopID, &l.ProductID, &l.Quantity, &l.MinThreshold, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
