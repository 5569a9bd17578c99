package alert

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	domainalert "github.com/jhoicas/Almacen-api/internal/domain/alert"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Service genera el reporte de alertas de stock de una tienda. Es un lector
// puro: se recalcula sobre el stock vigente en cada consulta, nunca se
// materializa, porque el umbral del catálogo puede cambiar por su cuenta.
type Service struct {
	levelRepo repository.StockLevelRepository
	shopRepo  repository.ShopRepository
}

// NewService construye el caso de uso de alertas.
func NewService(levelRepo repository.StockLevelRepository, shopRepo repository.ShopRepository) *Service {
	return &Service{levelRepo: levelRepo, shopRepo: shopRepo}
}

// ListByShop clasifica cada (tienda, producto) rastreado según cantidad y
// umbral mínimo, y devuelve solo el nivel pedido o todos si level es vacío.
func (s *Service) ListByShop(ctx context.Context, companyID, shopID, level string) ([]dto.StockAlertDTO, error) {
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

	levels, err := s.levelRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertDTO, 0, len(levels))
	for _, l := range levels {
		classified := domainalert.Classify(l.Quantity, l.MinThreshold)
		if level != "" && classified != level {
			continue
		}
		alerts = append(alerts, dto.StockAlertDTO{
			ShopID:       l.ShopID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			MinThreshold: l.MinThreshold,
			Shortage:     domainalert.Shortage(l.Quantity, l.MinThreshold),
			Level:        classified,
		})
	}
	return alerts, nil
}
