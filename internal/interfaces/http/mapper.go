package http

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func toLedgerEntryDTO(e *entity.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		ID:            e.ID,
		ShopID:        e.ShopID,
		ProductID:     e.ProductID,
		Delta:         e.Delta,
		Kind:          e.Kind,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Notes:         e.Notes,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
}

func toLedgerEntryDTOs(entries []*entity.LedgerEntry) []dto.LedgerEntryDTO {
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryDTO(e))
	}
	return out
}

func toStockLevelDTOs(levels []*entity.StockLevel) []dto.StockLevelDTO {
	out := make([]dto.StockLevelDTO, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelDTO{
			ShopID:       l.ShopID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			MinThreshold: l.MinThreshold,
			UpdatedAt:    l.UpdatedAt,
		})
	}
	return out
}

func toTransferDTO(t *entity.Transfer) dto.TransferDTO {
	out := dto.TransferDTO{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		FromShopID:     t.FromShopID,
		ToShopID:       t.ToShopID,
		Status:         t.Status,
		Notes:          t.Notes,
		RequestedBy:    t.RequestedBy,
		RequestedAt:    t.RequestedAt,
		ApprovedBy:     t.ApprovedBy,
		ApprovedAt:     t.ApprovedAt,
		ShippedAt:      t.ShippedAt,
		ReceivedBy:     t.ReceivedBy,
		ReceivedAt:     t.ReceivedAt,
		Lines:          make([]dto.TransferLineDTO, 0, len(t.Lines)),
	}
	for _, line := range t.Lines {
		out.Lines = append(out.Lines, dto.TransferLineDTO{
			ID:                line.ID,
			ProductID:         line.ProductID,
			QuantityRequested: line.QuantityRequested,
			QuantityShipped:   line.QuantityShipped,
			QuantityReceived:  line.QuantityReceived,
		})
	}
	return out
}

func toTransferDTOs(transfers []*entity.Transfer) []dto.TransferDTO {
	out := make([]dto.TransferDTO, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, toTransferDTO(t))
	}
	return out
}

func toSessionDTO(s *entity.InventorySession) dto.InventorySessionDTO {
	out := dto.InventorySessionDTO{
		ID:              s.ID,
		InventoryNumber: s.InventoryNumber,
		ShopID:          s.ShopID,
		Status:          s.Status,
		Notes:           s.Notes,
		StartedBy:       s.StartedBy,
		StartedAt:       s.StartedAt,
		CompletedBy:     s.CompletedBy,
		CompletedAt:     s.CompletedAt,
		Lines:           make([]dto.CountLineDTO, 0, len(s.Lines)),
	}
	for _, line := range s.Lines {
		out.Lines = append(out.Lines, toCountLineDTO(line))
	}
	return out
}

func toCountLineDTO(l *entity.CountLine) dto.CountLineDTO {
	return dto.CountLineDTO{
		ID:               l.ID,
		ProductID:        l.ProductID,
		ExpectedQuantity: l.ExpectedQuantity,
		CountedQuantity:  l.CountedQuantity,
		Discrepancy:      l.Discrepancy(),
		CountedBy:        l.CountedBy,
		CountedAt:        l.CountedAt,
	}
}

func toSessionDTOs(sessions []*entity.InventorySession) []dto.InventorySessionDTO {
	out := make([]dto.InventorySessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionDTO(s))
	}
	return out
}

func toAdjustmentDTO(a *entity.Adjustment) dto.AdjustmentDTO {
	return dto.AdjustmentDTO{
		ID:               a.ID,
		AdjustmentNumber: a.AdjustmentNumber,
		ShopID:           a.ShopID,
		ProductID:        a.ProductID,
		QuantityBefore:   a.QuantityBefore,
		QuantityChange:   a.QuantityChange,
		QuantityAfter:    a.QuantityAfter,
		Reason:           a.Reason,
		Notes:            a.Notes,
		CreatedBy:        a.CreatedBy,
		CreatedAt:        a.CreatedAt,
	}
}

func toAdjustmentDTOs(adjustments []*entity.Adjustment) []dto.AdjustmentDTO {
	out := make([]dto.AdjustmentDTO, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, toAdjustmentDTO(a))
	}
	return out
}
