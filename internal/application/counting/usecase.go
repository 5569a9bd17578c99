package counting

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UncountedPolicy decide qué hacer al validar con líneas sin conteo.
type UncountedPolicy string

const (
	// PolicySkipUncounted omite las líneas sin conteo: se tratan como
	// confirmadas correctas y no generan asiento (comportamiento histórico).
	PolicySkipUncounted UncountedPolicy = "skip"
	// PolicyCountAsZero trata las líneas sin conteo como contadas en 0 y
	// concilia toda la cantidad esperada.
	PolicyCountAsZero UncountedPolicy = "as_zero"
)

// Valid verifica que la política sea conocida.
func (p UncountedPolicy) Valid() bool {
	return p == PolicySkipUncounted || p == PolicyCountAsZero
}

// Service coordina las sesiones de inventario físico: snapshot de cantidades
// esperadas al iniciar, conteos incrementales y validación única que concilia
// las diferencias contra el libro.
type Service struct {
	txRunner    TxRunner
	sessionRepo repository.InventorySessionRepository
	shopRepo    repository.ShopRepository
	policy      UncountedPolicy
}

// NewService construye el caso de uso de conteo físico. sessionRepo va atado
// al pool y solo se usa para lecturas.
func NewService(
	txRunner TxRunner,
	sessionRepo repository.InventorySessionRepository,
	shopRepo repository.ShopRepository,
	policy UncountedPolicy,
) *Service {
	if !policy.Valid() {
		policy = PolicySkipUncounted
	}
	return &Service{
		txRunner:    txRunner,
		sessionRepo: sessionRepo,
		shopRepo:    shopRepo,
		policy:      policy,
	}
}

// CreateInput entrada para crear una sesión en DRAFT.
// InventoryNumber lo asigna el secuenciador externo.
type CreateInput struct {
	CompanyID       string
	UserID          string
	InventoryNumber string
	ShopID          string
	Notes           string
}

// Create registra la sesión en DRAFT, todavía sin snapshot.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.InventorySession, error) {
	if input.InventoryNumber == "" || input.ShopID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.checkShop(input.CompanyID, input.ShopID); err != nil {
		return nil, err
	}
	session := &entity.InventorySession{
		InventoryNumber: input.InventoryNumber,
		CompanyID:       input.CompanyID,
		ShopID:          input.ShopID,
		Status:          entity.SessionDRAFT,
		Notes:           input.Notes,
		CreatedAt:       time.Now(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Start pasa DRAFT → IN_PROGRESS y congela el snapshot: una línea por cada
// fila de stock rastreada de la tienda con expected_quantity = cantidad
// vigente. El snapshot se toma una sola vez; las ventas durante el conteo ya
// generan sus propios asientos y no se recalcula.
func (s *Service) Start(ctx context.Context, companyID, sessionID, userID string) (*entity.InventorySession, error) {
	var result *entity.InventorySession
	err := s.txRunner.RunCounting(ctx, func(
		levelRepo repository.StockLevelRepository,
		_ repository.LedgerRepository,
		sessionRepo repository.InventorySessionRepository,
	) error {
		session, err := s.lockSession(sessionRepo, companyID, sessionID)
		if err != nil {
			return err
		}
		if session.Status != entity.SessionDRAFT {
			return domain.ErrConflict
		}
		levels, err := levelRepo.ListByShop(ctx, session.ShopID)
		if err != nil {
			return err
		}
		if len(levels) == 0 {
			return domain.ErrEmptyShopInventory
		}
		now := time.Now()
		lines := make([]*entity.CountLine, 0, len(levels))
		for _, level := range levels {
			lines = append(lines, &entity.CountLine{
				SessionID:        session.ID,
				ProductID:        level.ProductID,
				ExpectedQuantity: level.Quantity,
			})
		}
		if err := sessionRepo.CreateLines(lines); err != nil {
			return err
		}
		session.Status = entity.SessionINPROGRESS
		session.StartedBy = userID
		session.StartedAt = &now
		if err := sessionRepo.Update(session); err != nil {
			return err
		}
		session.Lines = lines
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordCount registra (o corrige) la cantidad contada de un producto.
// Permitido cualquier número de veces mientras la sesión esté IN_PROGRESS.
func (s *Service) RecordCount(ctx context.Context, companyID, sessionID, productID string, counted int64, userID string) (*entity.CountLine, error) {
	if counted < 0 {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.CountLine
	err := s.txRunner.RunCounting(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.LedgerRepository,
		sessionRepo repository.InventorySessionRepository,
	) error {
		session, err := s.lockSession(sessionRepo, companyID, sessionID)
		if err != nil {
			return err
		}
		if session.Status != entity.SessionINPROGRESS {
			return domain.ErrConflict
		}
		var line *entity.CountLine
		for _, l := range session.Lines {
			if l.ProductID == productID {
				line = l
				break
			}
		}
		if line == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		line.CountedQuantity = &counted
		line.CountedBy = userID
		line.CountedAt = &now
		if err := sessionRepo.UpdateLineCount(line); err != nil {
			return err
		}
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Validate pasa IN_PROGRESS → COMPLETED: por cada línea con discrepancia
// distinta de cero aplica un movimiento COUNT_RECONCILE igual a la
// discrepancia, todo en una transacción. Las líneas sin conteo se resuelven
// según la política configurada. Irreversible: la sesión y sus asientos
// quedan como registro histórico.
func (s *Service) Validate(ctx context.Context, companyID, sessionID, userID string) (*entity.InventorySession, error) {
	var result *entity.InventorySession
	err := s.txRunner.RunCounting(ctx, func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
		sessionRepo repository.InventorySessionRepository,
	) error {
		session, err := s.lockSession(sessionRepo, companyID, sessionID)
		if err != nil {
			return err
		}
		if session.Status != entity.SessionINPROGRESS {
			return domain.ErrConflict
		}
		now := time.Now()
		for _, line := range session.Lines {
			var counted int64
			switch {
			case line.CountedQuantity != nil:
				counted = *line.CountedQuantity
			case s.policy == PolicyCountAsZero:
				counted = 0
			default:
				// skip: sin conteo se asume confirmada correcta
				continue
			}
			discrepancy := counted - line.ExpectedQuantity
			if discrepancy == 0 {
				continue
			}
			_, err := ledger.ApplyInTx(levelRepo, ledgerRepo, ledger.MovementInput{
				CompanyID:     companyID,
				UserID:        userID,
				ShopID:        session.ShopID,
				ProductID:     line.ProductID,
				Delta:         discrepancy,
				Kind:          entity.MovementCOUNT_RECONCILE,
				ReferenceType: entity.ReferenceInventory,
				ReferenceID:   session.ID,
			}, now)
			if err != nil {
				return err
			}
		}
		session.Status = entity.SessionCOMPLETED
		session.CompletedBy = userID
		session.CompletedAt = &now
		if err := sessionRepo.Update(session); err != nil {
			return err
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID devuelve la sesión con sus líneas.
func (s *Service) GetByID(ctx context.Context, companyID, sessionID string) (*entity.InventorySession, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return session, nil
}

// ListByShop lista sesiones de una tienda, opcionalmente por estado.
func (s *Service) ListByShop(ctx context.Context, companyID, shopID, status string, limit, offset int) ([]*entity.InventorySession, error) {
	if err := s.checkShop(companyID, shopID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListByShop(shopID, status, limit, offset)
}

func (s *Service) lockSession(sessionRepo repository.InventorySessionRepository, companyID, sessionID string) (*entity.InventorySession, error) {
	session, err := sessionRepo.GetForUpdate(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return session, nil
}

func (s *Service) checkShop(companyID, shopID string) error {
	shop, err := s.shopRepo.GetByID(shopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return domain.ErrNotFound
	}
	if shop.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
