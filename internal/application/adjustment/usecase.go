package adjustment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Service ajuste manual de stock: la válvula de escape para cualquier
// diferencia no cubierta por un traslado o un conteo formal. Es el escritor
// más simple: una tienda, un producto, un movimiento.
type Service struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
	shopRepo       repository.ShopRepository
	productRepo    repository.ProductRepository
}

// NewService construye el caso de uso de ajustes. adjustmentRepo va atado al
// pool y solo se usa para lecturas.
func NewService(
	txRunner TxRunner,
	adjustmentRepo repository.AdjustmentRepository,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
) *Service {
	return &Service{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		shopRepo:       shopRepo,
		productRepo:    productRepo,
	}
}

// AdjustInput entrada del ajuste: la cantidad objetivo, no el delta.
// AdjustmentNumber lo asigna el secuenciador externo.
type AdjustInput struct {
	CompanyID        string
	UserID           string
	AdjustmentNumber string
	ShopID           string
	ProductID        string
	NewQuantity      int64
	Reason           string
	Notes            string
}

// Adjust fija la cantidad del producto en la tienda al valor indicado:
// calcula quantity_change = nueva - vigente, falla con ErrNoOpAdjustment si
// es cero y escribe el registro de ajuste más exactamente un movimiento
// (ADJUSTMENT_IN o ADJUSTMENT_OUT) en la misma transacción.
func (s *Service) Adjust(ctx context.Context, input AdjustInput) (*entity.Adjustment, error) {
	if input.AdjustmentNumber == "" || input.ShopID == "" || input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.NewQuantity < 0 || !entity.ValidAdjustReason(input.Reason) {
		return nil, domain.ErrInvalidInput
	}
	if err := s.checkOwnership(input.CompanyID, input.ShopID, input.ProductID); err != nil {
		return nil, err
	}

	now := time.Now()
	adjustmentID := uuid.New().String()
	var result *entity.Adjustment
	err := s.txRunner.RunAdjustment(ctx, func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
		adjustmentRepo repository.AdjustmentRepository,
	) error {
		level, err := levelRepo.GetForUpdate(input.ShopID, input.ProductID)
		if err != nil {
			return err
		}
		before := level.Quantity
		change := input.NewQuantity - before
		if change == 0 {
			return domain.ErrNoOpAdjustment
		}
		kind := entity.MovementADJUSTMENT_IN
		if change < 0 {
			kind = entity.MovementADJUSTMENT_OUT
		}
		_, err = ledger.ApplyInTx(levelRepo, ledgerRepo, ledger.MovementInput{
			CompanyID:     input.CompanyID,
			UserID:        input.UserID,
			ShopID:        input.ShopID,
			ProductID:     input.ProductID,
			Delta:         change,
			Kind:          kind,
			ReferenceType: entity.ReferenceAdjustment,
			ReferenceID:   adjustmentID,
			Notes:         input.Notes,
		}, now)
		if err != nil {
			return err
		}
		adj := &entity.Adjustment{
			ID:               adjustmentID,
			AdjustmentNumber: input.AdjustmentNumber,
			CompanyID:        input.CompanyID,
			ShopID:           input.ShopID,
			ProductID:        input.ProductID,
			QuantityBefore:   before,
			QuantityChange:   change,
			QuantityAfter:    input.NewQuantity,
			Reason:           input.Reason,
			Notes:            input.Notes,
			CreatedBy:        input.UserID,
			CreatedAt:        now,
		}
		if err := adjustmentRepo.Create(adj); err != nil {
			return err
		}
		result = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID devuelve un ajuste.
func (s *Service) GetByID(ctx context.Context, companyID, adjustmentID string) (*entity.Adjustment, error) {
	adj, err := s.adjustmentRepo.GetByID(adjustmentID)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return adj, nil
}

// ListByShop lista los ajustes de una tienda.
func (s *Service) ListByShop(ctx context.Context, companyID, shopID string, limit, offset int) ([]*entity.Adjustment, error) {
	shop, err := s.shopRepo.GetByID(shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	if shop.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s.adjustmentRepo.ListByShop(shopID, limit, offset)
}

func (s *Service) checkOwnership(companyID, shopID, productID string) error {
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
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
