package entity_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

func itemWith(stock, min, max float64) *entity.InventoryItem {
	return &entity.InventoryItem{
		CurrentStock: decimal.NewFromFloat(stock),
		MinStock:     decimal.NewFromFloat(min),
		MaxStock:     decimal.NewFromFloat(max),
	}
}

// El estado se evalúa en orden de prioridad y siempre es exactamente uno de los cuatro.
func TestStatus_OrdenDePrioridad(t *testing.T) {
	cases := []struct {
		name             string
		stock, min, max  float64
		expected         entity.StockStatus
	}{
		{"agotado", 0, 10, 100, entity.StatusOutOfStock},
		{"agotado con mínimo cero sigue siendo OutOfStock", 0, 0, 100, entity.StatusOutOfStock},
		{"bajo mínimo", 5, 10, 100, entity.StatusLowStock},
		{"exactamente en el mínimo", 10, 10, 100, entity.StatusLowStock},
		{"exactamente en el máximo", 100, 10, 100, entity.StatusOverstock},
		{"sobre el máximo", 150, 10, 100, entity.StatusOverstock},
		{"rango normal", 50, 10, 100, entity.StatusInStock},
		{"sin tope (max 0) no es Overstock", 50, 10, 0, entity.StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, itemWith(tc.stock, tc.min, tc.max).Status())
		})
	}
}

func TestTotalValue(t *testing.T) {
	it := &entity.InventoryItem{
		CurrentStock: decimal.NewFromFloat(2.5),
		UnitPrice:    decimal.NewFromInt(4),
	}
	assert.True(t, it.TotalValue().Equal(decimal.NewFromInt(10)))
}

// El SKU lleva prefijo determinista (categoría + nombre compactado) y sufijo aleatorio.
func TestGenerateSKU_Prefijo(t *testing.T) {
	sku := entity.GenerateSKU(entity.CategoryDye, "Azul Marino 5G")

	assert.True(t, strings.HasPrefix(sku, "DYE-AZUL-"),
		"prefijo esperado DYE-AZUL-, SKU generado: %s", sku)

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 4, "el sufijo aleatorio tiene 4 caracteres")
}

// Categoría fuera del vocabulario cae al código genérico.
func TestGenerateSKU_CategoriaDesconocida(t *testing.T) {
	sku := entity.GenerateSKU("misc", "Cinta")
	assert.True(t, strings.HasPrefix(sku, "GEN-CINT-"), "SKU generado: %s", sku)
}

// Nombre sin caracteres alfanuméricos: el SKU queda categoría + sufijo.
func TestGenerateSKU_NombreVacio(t *testing.T) {
	sku := entity.GenerateSKU(entity.CategoryFabric, "¡¡¡***!!!")
	parts := strings.Split(sku, "-")
	require.Len(t, parts, 2)
	assert.Equal(t, "FAB", parts[0])
}

// La unicidad del sufijo es débil pero dos llamadas seguidas prácticamente
// nunca colisionan; el caso de uso la garantiza con una verificación explícita.
func TestGenerateSKU_SufijoVaria(t *testing.T) {
	a := entity.GenerateSKU(entity.CategoryChemical, "Soda cáustica")
	b := entity.GenerateSKU(entity.CategoryChemical, "Soda cáustica")
	assert.NotEqual(t, a, b)
}

func TestReasonsForType(t *testing.T) {
	assert.Contains(t, entity.ReasonsForType(entity.TxTypeIn), "Purchase")
	assert.Contains(t, entity.ReasonsForType(entity.TxTypeOut), "Waste")
	assert.Contains(t, entity.ReasonsForType(entity.TxTypeAdjustment), "Physical Count")
	assert.Nil(t, entity.ReasonsForType("transfer"))
}
