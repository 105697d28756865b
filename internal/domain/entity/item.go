package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus estado derivado del nivel de stock de un artículo.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOverstock  StockStatus = "overstock"
	StatusInStock    StockStatus = "in_stock"
)

// InventoryItem representa un artículo del inventario (un SKU) con sus límites
// de stock. CurrentStock solo lo muta el motor del ledger; las ediciones de
// campos nunca lo tocan.
type InventoryItem struct {
	ID           string
	UserID       string // partición: cada artículo pertenece a la cuenta del usuario
	SKU          string // único por usuario
	Name         string
	Category     string // dye, chemical, auxiliary, fabric, equipment
	Unit         string // kg, g, L, ...
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal // 0 = sin tope superior
	UnitPrice    decimal.Decimal
	Supplier     string
	Location     string
	BatchNumber  string
	ExpiryDate   *time.Time
	Notes        string
	CreatedAt    time.Time
	LastUpdated  time.Time // se actualiza en cada mutación
}

// Status deriva el estado evaluando en este orden de prioridad:
// OutOfStock (stock == 0) > LowStock (stock <= mínimo) >
// Overstock (stock >= máximo, con máximo definido) > InStock.
// Un artículo en 0 con mínimo 0 es OutOfStock, no InStock.
func (i *InventoryItem) Status() StockStatus {
	switch {
	case i.CurrentStock.IsZero():
		return StatusOutOfStock
	case i.CurrentStock.LessThanOrEqual(i.MinStock):
		return StatusLowStock
	case i.MaxStock.GreaterThan(decimal.Zero) && i.CurrentStock.GreaterThanOrEqual(i.MaxStock):
		return StatusOverstock
	default:
		return StatusInStock
	}
}

// TotalValue valor del stock actual a precio unitario.
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.UnitPrice)
}

// GenerateSKU genera un SKU con prefijo determinista (código de categoría de
// 3 letras + hasta 4 caracteres del nombre compactado) y un sufijo aleatorio.
// La unicidad es débil (el sufijo puede colisionar); el caso de uso la verifica
// contra los artículos del usuario antes de guardar.
func GenerateSKU(category, name string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	parts := []string{CategoryCode(category)}
	if code := compactName(name); code != "" {
		parts = append(parts, code)
	}
	parts = append(parts, suffix)
	return strings.Join(parts, "-")
}

// compactName compacta el nombre a mayúsculas alfanuméricas, máximo 4 caracteres.
func compactName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 4 {
				break
			}
		}
	}
	return b.String()
}
