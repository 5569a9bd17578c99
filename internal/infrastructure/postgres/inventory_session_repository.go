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

var _ repository.InventorySessionRepository = (*InventorySessionRepo)(nil)

// InventorySessionRepo implementación de InventorySessionRepository sobre
// PostgreSQL (usable con pool o tx).
type InventorySessionRepo struct {
	q Querier
}

// NewInventorySessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventorySessionRepository(q Querier) *InventorySessionRepo {
	return &InventorySessionRepo{q: q}
}

const sessionColumns = `id, inventory_number, company_id, shop_id, status, notes,
	started_by, started_at, completed_by, completed_at, created_at`

// Create persiste la sesión (aún sin líneas: el snapshot llega en Start).
// inventory_number es único: una colisión devuelve ErrDuplicate.
func (r *InventorySessionRepo) Create(s *entity.InventorySession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.InventoryNumber, s.CompanyID, s.ShopID, s.Status, s.Notes,
		nullable(s.StartedBy), s.StartedAt, nullable(s.CompletedBy), s.CompletedAt, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory session: %w", err)
	}
	return nil
}

// GetByID devuelve la sesión con líneas; nil si no existe.
func (r *InventorySessionRepo) GetByID(id string) (*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE id = $1`
	return r.get(query, id)
}

// GetForUpdate bloquea la fila de la sesión (SELECT FOR UPDATE) y carga las
// líneas; evita validar y contar a la vez.
func (r *InventorySessionRepo) GetForUpdate(id string) (*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE id = $1 FOR UPDATE`
	return r.get(query, id)
}

func (r *InventorySessionRepo) get(query, id string) (*entity.InventorySession, error) {
	s, err := scanSession(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory session: %w", err)
	}
	lines, err := r.listLines(s.ID)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return s, nil
}

// Update persiste estado, actores y marcas de tiempo del encabezado.
func (r *InventorySessionRepo) Update(s *entity.InventorySession) error {
	query := `
		UPDATE inventory_sessions
		SET status = $2, notes = $3, started_by = $4, started_at = $5,
		    completed_by = $6, completed_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Status, s.Notes, nullable(s.StartedBy), s.StartedAt,
		nullable(s.CompletedBy), s.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory session: %w", err)
	}
	return nil
}

// CreateLines persiste el snapshot de líneas tomado al iniciar la sesión.
func (r *InventorySessionRepo) CreateLines(lines []*entity.CountLine) error {
	query := `
		INSERT INTO count_lines (id, session_id, product_id, expected_quantity, counted_quantity, counted_by, counted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), query,
			line.ID, line.SessionID, line.ProductID, line.ExpectedQuantity,
			line.CountedQuantity, nullable(line.CountedBy), line.CountedAt,
		)
		if err != nil {
			return fmt.Errorf("create count line: %w", err)
		}
	}
	return nil
}

// UpdateLineCount registra (o corrige) la cantidad contada de una línea.
func (r *InventorySessionRepo) UpdateLineCount(line *entity.CountLine) error {
	query := `
		UPDATE count_lines
		SET counted_quantity = $2, counted_by = $3, counted_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.CountedQuantity, nullable(line.CountedBy), line.CountedAt,
	)
	if err != nil {
		return fmt.Errorf("update count line: %w", err)
	}
	return nil
}

// ListByShop lista sesiones de una tienda, opcionalmente por estado.
// Devuelve encabezados sin líneas.
func (r *InventorySessionRepo) ListByShop(shopID string, status string, limit, offset int) ([]*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE shop_id = $1`
	args := []any{shopID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory sessions by shop: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventorySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *InventorySessionRepo) listLines(sessionID string) ([]*entity.CountLine, error) {
	query := `
		SELECT id, session_id, product_id, expected_quantity, counted_quantity, counted_by, counted_at
		FROM count_lines WHERE session_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list count lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.CountLine
	for rows.Next() {
		var l entity.CountLine
		var countedBy *string
		if err := rows.Scan(&l.ID, &l.SessionID, &l.ProductID, &l.ExpectedQuantity,
			&l.CountedQuantity, &countedBy, &l.CountedAt); err != nil {
			return nil, fmt.Errorf("scan count line: %w", err)
		}
		if countedBy != nil {
			l.CountedBy = *countedBy
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func scanSession(row pgx.Row) (*entity.InventorySession, error) {
	var s entity.InventorySession
	var startedBy, completedBy *string
	err := row.Scan(
		&s.ID, &s.InventoryNumber, &s.CompanyID, &s.ShopID, &s.Status, &s.Notes,
		&startedBy, &s.StartedAt, &completedBy, &s.CompletedAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startedBy != nil {
		s.StartedBy = *startedBy
	}
	if completedBy != nil {
		s.CompletedBy = *completedBy
	}
	return &s, nil
}
