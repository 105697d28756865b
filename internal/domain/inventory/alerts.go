// Package inventory contiene los servicios de dominio puros que se recalculan
// completos sobre cada snapshot de artículos (sin estado incremental: el
// volumen es de trastienda, no de alto tráfico).
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// Severidades de alerta de stock bajo.
const (
	SeverityLow      = "low"
	SeverityCritical = "critical"
)

// LowStockAlert proyección derivada de un artículo bajo mínimo.
// Nunca se persiste: se recalcula en cada snapshot.
type LowStockAlert struct {
	ItemID       string
	ItemName     string
	SKU          string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	Unit         string
	Severity     string // critical con stock en cero, low en otro caso
}

// Stats agregados del conjunto de artículos.
type Stats struct {
	TotalItems      int
	TotalValue      decimal.Decimal // Σ stock actual * precio unitario
	LowStockCount   int             // artículos en LowStock (excluye los agotados)
	OutOfStockCount int
}

// DeriveAlerts recorre el snapshot completo y emite una alerta por cada
// artículo con stock <= mínimo. Pura e idempotente: el mismo snapshot produce
// siempre el mismo resultado.
func DeriveAlerts(items []*entity.InventoryItem) []LowStockAlert {
	alerts := make([]LowStockAlert, 0)
	for _, item := range items {
		if item.CurrentStock.GreaterThan(item.MinStock) {
			continue
		}
		severity := SeverityLow
		if item.CurrentStock.IsZero() {
			severity = SeverityCritical
		}
		alerts = append(alerts, LowStockAlert{
			ItemID:       item.ID,
			ItemName:     item.Name,
			SKU:          item.SKU,
			CurrentStock: item.CurrentStock,
			MinStock:     item.MinStock,
			Unit:         item.Unit,
			Severity:     severity,
		})
	}
	return alerts
}

// DeriveStats calcula los agregados del snapshot. Independiente del orden.
func DeriveStats(items []*entity.InventoryItem) Stats {
	stats := Stats{TotalItems: len(items), TotalValue: decimal.Zero}
	for _, item := range items {
		stats.TotalValue = stats.TotalValue.Add(item.TotalValue())
		switch item.Status() {
		case entity.StatusLowStock:
			stats.LowStockCount++
		case entity.StatusOutOfStock:
			stats.OutOfStockCount++
		}
	}
	return stats
}
