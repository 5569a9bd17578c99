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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL
// (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, transfer_number, company_id, from_shop_id, to_shop_id, status, notes,
	requested_by, requested_at, approved_by, approved_at, shipped_at, received_by, received_at`

// Create persiste el traslado y todas sus líneas.
// transfer_number es único: una colisión devuelve ErrDuplicate.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransferNumber, t.CompanyID, t.FromShopID, t.ToShopID, t.Status, t.Notes,
		nullable(t.RequestedBy), t.RequestedAt, nullable(t.ApprovedBy), t.ApprovedAt,
		t.ShippedAt, nullable(t.ReceivedBy), t.ReceivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	for _, line := range t.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.TransferID = t.ID
		lineQuery := `
			INSERT INTO transfer_lines (id, transfer_id, product_id, quantity_requested, quantity_shipped, quantity_received)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.TransferID, line.ProductID, line.QuantityRequested,
			line.QuantityShipped, line.QuantityReceived,
		)
		if err != nil {
			return fmt.Errorf("create transfer line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el traslado con líneas; nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.get(query, id)
}

// GetForUpdate bloquea la fila del traslado (SELECT FOR UPDATE) y carga las
// líneas. Dos acciones concurrentes sobre el mismo traslado se serializan aquí.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.get(query, id)
}

func (r *TransferRepo) get(query, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	lines, err := r.listLines(t.ID)
	if err != nil {
		return nil, err
	}
	t.Lines = lines
	return t, nil
}

// Update persiste estado, actores y marcas de tiempo del encabezado.
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $2, notes = $3, approved_by = $4, approved_at = $5,
		    shipped_at = $6, received_by = $7, received_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Status, t.Notes, nullable(t.ApprovedBy), t.ApprovedAt,
		t.ShippedAt, nullable(t.ReceivedBy), t.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// UpdateLine persiste las cantidades despachadas/recibidas de una línea.
func (r *TransferRepo) UpdateLine(line *entity.TransferLine) error {
	query := `
		UPDATE transfer_lines
		SET quantity_shipped = $2, quantity_received = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, line.ID, line.QuantityShipped, line.QuantityReceived)
	if err != nil {
		return fmt.Errorf("update transfer line: %w", err)
	}
	return nil
}

// ListByShop lista traslados que tocan la tienda como origen o destino,
// opcionalmente filtrados por estado. Devuelve encabezados sin líneas.
func (r *TransferRepo) ListByShop(shopID string, status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + ` FROM transfers
		WHERE (from_shop_id = $1 OR to_shop_id = $1)`
	args := []any{shopID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY requested_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers by shop: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TransferRepo) listLines(transferID string) ([]*entity.TransferLine, error) {
	query := `
		SELECT id, transfer_id, product_id, quantity_requested, quantity_shipped, quantity_received
		FROM transfer_lines WHERE transfer_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.TransferLine
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.QuantityRequested,
			&l.QuantityShipped, &l.QuantityReceived); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var requestedBy, approvedBy, receivedBy *string
	err := row.Scan(
		&t.ID, &t.TransferNumber, &t.CompanyID, &t.FromShopID, &t.ToShopID, &t.Status, &t.Notes,
		&requestedBy, &t.RequestedAt, &approvedBy, &t.ApprovedAt,
		&t.ShippedAt, &receivedBy, &t.ReceivedAt,
	)
	if err != nil {
		return nil, err
	}
	if requestedBy != nil {
		t.RequestedBy = *requestedBy
	}
	if approvedBy != nil {
		t.ApprovedBy = *approvedBy
	}
	if receivedBy != nil {
		t.ReceivedBy = *receivedBy
	}
	return &t, nil
}

// nullable convierte cadena vacía en NULL para columnas con FK a users.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
