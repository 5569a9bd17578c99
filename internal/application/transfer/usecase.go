package transfer

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Service coordina el traslado de mercancía entre tiendas como máquina de
// estados (PENDING → APPROVED → IN_TRANSIT → COMPLETED, con cancelación antes
// del despacho). Solo Ship y Receive tocan el libro de stock.
type Service struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	shopRepo     repository.ShopRepository
	productRepo  repository.ProductRepository
}

// NewService construye el caso de uso de traslados. transferRepo va atado al
// pool y solo se usa para lecturas.
func NewService(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
) *Service {
	return &Service{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		shopRepo:     shopRepo,
		productRepo:  productRepo,
	}
}

// CreateLineInput línea solicitada al crear un traslado.
type CreateLineInput struct {
	ProductID string
	Quantity  int64
}

// CreateInput entrada para crear un traslado en PENDING.
// TransferNumber lo asigna el secuenciador externo; aquí es una cadena opaca.
type CreateInput struct {
	CompanyID      string
	UserID         string
	TransferNumber string
	FromShopID     string
	ToShopID       string
	Notes          string
	Lines          []CreateLineInput
}

// ReceiveInput cantidades recibidas declaradas por línea (ID de línea →
// cantidad). Las líneas ausentes se reciben completas (lo despachado); una
// clave que no corresponde a ninguna línea del traslado se rechaza.
type ReceiveInput struct {
	ReceivedByLine map[string]int64
}

// Create registra la propuesta de traslado en PENDING. No reserva ni mueve
// stock: PENDING es solo una solicitud.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.Transfer, error) {
	if input.TransferNumber == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.FromShopID == input.ToShopID {
		return nil, domain.ErrSameShopTransfer
	}
	for _, line := range input.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	if err := s.checkShop(input.CompanyID, input.FromShopID); err != nil {
		return nil, err
	}
	if err := s.checkShop(input.CompanyID, input.ToShopID); err != nil {
		return nil, err
	}
	for _, line := range input.Lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != input.CompanyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	t := &entity.Transfer{
		TransferNumber: input.TransferNumber,
		CompanyID:      input.CompanyID,
		FromShopID:     input.FromShopID,
		ToShopID:       input.ToShopID,
		Status:         entity.TransferPENDING,
		Notes:          input.Notes,
		RequestedBy:    input.UserID,
		RequestedAt:    now,
	}
	for _, line := range input.Lines {
		t.Lines = append(t.Lines, &entity.TransferLine{
			ProductID:         line.ProductID,
			QuantityRequested: line.Quantity,
		})
	}
	err := s.txRunner.RunTransfer(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.LedgerRepository,
		transferRepo repository.TransferRepository,
	) error {
		return transferRepo.Create(t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Approve pasa PENDING → APPROVED. Sin efecto en el libro.
func (s *Service) Approve(ctx context.Context, companyID, transferID, userID string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := s.txRunner.RunTransfer(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.LedgerRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := s.lockTransfer(transferRepo, companyID, transferID)
		if err != nil {
			return err
		}
		if err := t.Apply(entity.TransferActionApprove); err != nil {
			return err
		}
		now := time.Now()
		t.ApprovedBy = userID
		t.ApprovedAt = &now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Ship pasa APPROVED → IN_TRANSIT: fija quantity_shipped = quantity_requested
// en cada línea y descuenta TRANSFER_OUT en la tienda origen, todo en una
// transacción. Si alguna línea dejaría el stock negativo, nada se aplica y el
// traslado queda en APPROVED.
func (s *Service) Ship(ctx context.Context, companyID, transferID, userID string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := s.txRunner.RunTransfer(ctx, func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := s.lockTransfer(transferRepo, companyID, transferID)
		if err != nil {
			return err
		}
		if err := t.Apply(entity.TransferActionShip); err != nil {
			return err
		}
		now := time.Now()
		for _, line := range t.Lines {
			shipped := line.QuantityRequested
			line.QuantityShipped = &shipped
			_, err := ledger.ApplyInTx(levelRepo, ledgerRepo, ledger.MovementInput{
				CompanyID:     companyID,
				UserID:        userID,
				ShopID:        t.FromShopID,
				ProductID:     line.ProductID,
				Delta:         -shipped,
				Kind:          entity.MovementTRANSFER_OUT,
				ReferenceType: entity.ReferenceTransfer,
				ReferenceID:   t.ID,
			}, now)
			if err != nil {
				return err
			}
			if err := transferRepo.UpdateLine(line); err != nil {
				return err
			}
		}
		t.ShippedAt = &now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Receive pasa IN_TRANSIT → COMPLETED: fija quantity_received por línea (lo
// declarado, o lo despachado si no se declara) y suma TRANSFER_IN en la tienda
// destino, todo en una transacción. Terminal.
func (s *Service) Receive(ctx context.Context, companyID, transferID, userID string, input ReceiveInput) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := s.txRunner.RunTransfer(ctx, func(
		levelRepo repository.StockLevelRepository,
		ledgerRepo repository.LedgerRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := s.lockTransfer(transferRepo, companyID, transferID)
		if err != nil {
			return err
		}
		if err := t.Apply(entity.TransferActionReceive); err != nil {
			return err
		}
		now := time.Now()
		declaredPending := len(input.ReceivedByLine)
		for _, line := range t.Lines {
			if line.QuantityShipped == nil {
				return domain.ErrConflict
			}
			received := *line.QuantityShipped
			if declared, ok := input.ReceivedByLine[line.ID]; ok {
				if declared < 0 || declared > *line.QuantityShipped {
					return domain.ErrInvalidInput
				}
				received = declared
				declaredPending--
			}
			line.QuantityReceived = &received
			if received > 0 {
				_, err := ledger.ApplyInTx(levelRepo, ledgerRepo, ledger.MovementInput{
					CompanyID:     companyID,
					UserID:        userID,
					ShopID:        t.ToShopID,
					ProductID:     line.ProductID,
					Delta:         received,
					Kind:          entity.MovementTRANSFER_IN,
					ReferenceType: entity.ReferenceTransfer,
					ReferenceID:   t.ID,
				}, now)
				if err != nil {
					return err
				}
			}
			if err := transferRepo.UpdateLine(line); err != nil {
				return err
			}
		}
		// Una clave declarada que no corresponde a ninguna línea es un error
		// del caller, no algo que se ignora en silencio
		if declaredPending != 0 {
			return domain.ErrInvalidInput
		}
		t.ReceivedBy = userID
		t.ReceivedAt = &now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel pasa PENDING o APPROVED → CANCELLED. Una vez despachado (IN_TRANSIT)
// la mercancía está comprometida y solo puede recibirse; la tabla de
// transiciones rechaza cancelar en ese estado.
func (s *Service) Cancel(ctx context.Context, companyID, transferID, userID string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := s.txRunner.RunTransfer(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.LedgerRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := s.lockTransfer(transferRepo, companyID, transferID)
		if err != nil {
			return err
		}
		if err := t.Apply(entity.TransferActionCancel); err != nil {
			return err
		}
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID devuelve el traslado con sus líneas.
func (s *Service) GetByID(ctx context.Context, companyID, transferID string) (*entity.Transfer, error) {
	t, err := s.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// ListByShop lista traslados que tocan una tienda (origen o destino).
func (s *Service) ListByShop(ctx context.Context, companyID, shopID, status string, limit, offset int) ([]*entity.Transfer, error) {
	if err := s.checkShop(companyID, shopID); err != nil {
		return nil, err
	}
	return s.transferRepo.ListByShop(shopID, status, limit, offset)
}

// lockTransfer bloquea la fila del traslado y valida pertenencia a la empresa.
func (s *Service) lockTransfer(transferRepo repository.TransferRepository, companyID, transferID string) (*entity.Transfer, error) {
	t, err := transferRepo.GetForUpdate(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return t, nil
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
