package inventory

import (
	"github.com/jhoicas/Textil-api/internal/application/dto"
	domaininv "github.com/jhoicas/Textil-api/internal/domain/inventory"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// AlertsUseCase expone las proyecciones puras (alertas y estadísticas) sobre el
// snapshot completo de artículos del usuario.
type AlertsUseCase struct {
	itemRepo repository.ItemRepository
}

// NewAlertsUseCase construye el caso de uso.
func NewAlertsUseCase(itemRepo repository.ItemRepository) *AlertsUseCase {
	return &AlertsUseCase{itemRepo: itemRepo}
}

// Alerts recalcula las alertas de stock bajo desde cero sobre el snapshot actual.
func (uc *AlertsUseCase) Alerts(userID string) ([]dto.LowStockAlertDTO, error) {
	items, err := uc.itemRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}
	return ToAlertDTOs(domaininv.DeriveAlerts(items)), nil
}

// Stats recalcula los agregados del inventario.
func (uc *AlertsUseCase) Stats(userID string) (*dto.StatsResponse, error) {
	items, err := uc.itemRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}
	stats := domaininv.DeriveStats(items)
	resp := ToStatsResponse(stats)
	return &resp, nil
}

// ToAlertDTOs convierte alertas de dominio a DTOs (compartido con el hub).
func ToAlertDTOs(alerts []domaininv.LowStockAlert) []dto.LowStockAlertDTO {
	out := make([]dto.LowStockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.LowStockAlertDTO{
			ItemID:       a.ItemID,
			ItemName:     a.ItemName,
			SKU:          a.SKU,
			CurrentStock: a.CurrentStock,
			MinStock:     a.MinStock,
			Unit:         a.Unit,
			Severity:     a.Severity,
		})
	}
	return out
}

// ToStatsResponse convierte estadísticas de dominio a DTO.
func ToStatsResponse(s domaininv.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalItems:      s.TotalItems,
		TotalValue:      s.TotalValue,
		LowStockCount:   s.LowStockCount,
		OutOfStockCount: s.OutOfStockCount,
	}
}
