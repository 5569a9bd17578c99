package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Service es el único escritor directo del libro de stock. Toda mutación de
// cantidad pasa por ApplyMovement (o ApplyInTx desde otro caso de uso dentro
// de su propia transacción): el asiento y la cantidad nunca se producen por
// separado.
type Service struct {
	txRunner    TxRunner
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
	levelRepo   repository.StockLevelRepository
	ledgerRepo  repository.LedgerRepository
}

// NewService construye el caso de uso del libro. levelRepo y ledgerRepo van
// atados al pool y solo se usan para lecturas; las escrituras pasan por txRunner.
func NewService(
	txRunner TxRunner,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
) *Service {
	return &Service{
		txRunner:    txRunner,
		shopRepo:    shopRepo,
		productRepo: productRepo,
		levelRepo:   levelRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// MovementInput entrada para registrar un movimiento del libro.
type MovementInput struct {
	CompanyID     string
	UserID        string
	ShopID        string
	ProductID     string
	Delta         int64
	Kind          string
	ReferenceType string
	ReferenceID   string
	Notes         string
}

// SaleLine línea vendida en una venta POS.
type SaleLine struct {
	ProductID string
	Quantity  int64 // unidades vendidas, > 0
}

// SaleInput entrada para descontar una venta completa.
type SaleInput struct {
	CompanyID string
	UserID    string
	ShopID    string
	SaleID    string
	Lines     []SaleLine
}

// ApplyMovement registra un movimiento de forma atómica: bloquea la fila de
// stock (SELECT FOR UPDATE), verifica que la cantidad resultante no sea
// negativa, actualiza la cantidad e inserta el asiento — todo en una
// transacción. Un delta negativo que exceda el disponible falla con
// ErrInsufficientStock sin aplicar nada.
func (s *Service) ApplyMovement(ctx context.Context, input MovementInput) (*entity.LedgerEntry, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	now := time.Now()
	var entry *entity.LedgerEntry
	err := s.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		e, err := ApplyInTx(levelRepo, ledgerRepo, input, now)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplySale descuenta todas las líneas de una venta en una sola transacción.
// Si alguna línea no tiene stock suficiente, ninguna se aplica y la venta no
// debe completarse.
func (s *Service) ApplySale(ctx context.Context, input SaleInput) error {
	if input.ShopID == "" || input.SaleID == "" || len(input.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	if err := s.checkShop(input.CompanyID, input.ShopID); err != nil {
		return err
	}
	now := time.Now()
	return s.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		for _, line := range input.Lines {
			_, err := ApplyInTx(levelRepo, ledgerRepo, MovementInput{
				CompanyID:     input.CompanyID,
				UserID:        input.UserID,
				ShopID:        input.ShopID,
				ProductID:     line.ProductID,
				Delta:         -line.Quantity,
				Kind:          entity.MovementSALE,
				ReferenceType: entity.ReferenceSale,
				ReferenceID:   input.SaleID,
			}, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetQuantity devuelve la cantidad vigente; 0 si nunca hubo stock del producto
// en la tienda.
func (s *Service) GetQuantity(ctx context.Context, companyID, shopID, productID string) (int64, error) {
	if err := s.checkShop(companyID, shopID); err != nil {
		return 0, err
	}
	level, err := s.levelRepo.Get(shopID, productID)
	if err != nil {
		return 0, err
	}
	return level.Quantity, nil
}

// ListLevels lista el stock vigente de la tienda (con umbral del catálogo).
func (s *Service) ListLevels(ctx context.Context, companyID, shopID string) ([]*entity.StockLevel, error) {
	if err := s.checkShop(companyID, shopID); err != nil {
		return nil, err
	}
	return s.levelRepo.ListByShop(ctx, shopID)
}

// ListEntriesByShop lista el historial de asientos de una tienda.
func (s *Service) ListEntriesByShop(ctx context.Context, companyID, shopID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	if err := s.checkShop(companyID, shopID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListByShop(shopID, from, to, limit, offset)
}

// ListEntriesByProduct lista el historial de asientos de un producto.
func (s *Service) ListEntriesByProduct(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s.ledgerRepo.ListByProduct(productID, from, to, limit, offset)
}

func (s *Service) validate(input MovementInput) error {
	if input.ShopID == "" || input.ProductID == "" || input.Delta == 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementKind(input.Kind) {
		return domain.ErrInvalidInput
	}
	if err := s.checkShop(input.CompanyID, input.ShopID); err != nil {
		return err
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}
	return nil
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

// ApplyInTx aplica un movimiento usando repositorios ya atados a la
// transacción del caller (traslados, conciliación y ajustes componen sus
// movimientos con esta función dentro de su propia tx). Bloquea la fila,
// verifica no-negatividad, actualiza cantidad e inserta el asiento.
func ApplyInTx(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
	input MovementInput,
	now time.Time,
) (*entity.LedgerEntry, error) {
	level, err := levelRepo.GetForUpdate(input.ShopID, input.ProductID)
	if err != nil {
		return nil, err
	}
	newQty := level.Quantity + input.Delta
	if newQty < 0 {
		return nil, &domain.InsufficientStockError{
			ShopID:    input.ShopID,
			ProductID: input.ProductID,
			Requested: -input.Delta,
			Available: level.Quantity,
		}
	}
	level.Quantity = newQty
	level.UpdatedAt = now
	if err := levelRepo.Upsert(level); err != nil {
		return nil, err
	}
	entry := &entity.LedgerEntry{
		ShopID:        input.ShopID,
		ProductID:     input.ProductID,
		Delta:         input.Delta,
		Kind:          input.Kind,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		Notes:         input.Notes,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
