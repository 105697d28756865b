package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/ledger"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

var testNow = time.Date(2026, 2, 10, 15, 30, 0, 0, time.UTC)

// buildItem artículo base para los tests: 20 kg de colorante.
func buildItem(stock float64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           "item-1",
		UserID:       testUserID,
		SKU:          "DYE-AZUL-9F3A",
		Name:         "Colorante reactivo azul",
		Category:     entity.CategoryDye,
		Unit:         "kg",
		CurrentStock: decimal.NewFromFloat(stock),
		MinStock:     decimal.NewFromInt(5),
		MaxStock:     decimal.NewFromInt(100),
		UnitPrice:    decimal.NewFromInt(30),
	}
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// Una entrada suma el delta al stock actual: 20 + 5 = 25.
func TestApply_EntradaSumaDelta(t *testing.T) {
	item := buildItem(20)
	req := ledger.Request{Type: entity.TxTypeIn, Quantity: decimal.NewFromInt(5), Reason: "Purchase"}

	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)

	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(25)),
		"entrada de 5 sobre 20 debe dar 25, dio %s", res.NewStock)
	require.NotNil(t, res.Transaction, "toda aplicación aceptada debe emitir su registro")
	assert.Equal(t, entity.TxTypeIn, res.Transaction.Type)
	assert.Equal(t, "item-1", res.Transaction.ItemID)
	assert.Equal(t, testUserID, res.Transaction.UserID)
	assert.Equal(t, testNow, res.Transaction.Timestamp)
}

// Stock fraccionado: 2.5 kg + 0.75 kg = 3.25 kg.
func TestApply_EntradaFraccionada(t *testing.T) {
	item := buildItem(2.5)
	req := ledger.Request{Type: entity.TxTypeIn, Quantity: decimal.NewFromFloat(0.75), Reason: "Production"}

	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(decimal.NewFromFloat(3.25)))
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// Salida dentro del disponible: 20 - 6 = 14.
func TestApply_SalidaRestaDelta(t *testing.T) {
	item := buildItem(20)
	req := ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.NewFromInt(6), Reason: "Usage"}

	require.NoError(t, ledger.Validate(item, req))
	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(14)))
}

// Camino interactivo: una salida que excede el stock se rechaza en Validate
// citando el disponible con su unidad ("3 kg").
func TestValidate_SalidaExcedida_RechazaCitandoDisponible(t *testing.T) {
	item := buildItem(3)
	req := ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.NewFromInt(5), Reason: "Sale"}

	err := ledger.Validate(item, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
		"debe despachar como ErrInsufficientStock vía errors.Is")

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "kg", insufficient.Unit)
	assert.Contains(t, err.Error(), "3 kg", "el mensaje debe citar el stock actual con su unidad")
}

// Camino de carrera: si la solicitud pasó la validación pero el stock bajó antes
// del commit, Apply la acepta con clamp a cero en lugar de stock negativo.
func TestApply_SalidaExcedida_ClampACero(t *testing.T) {
	item := buildItem(4) // el stock bajó de 10 a 4 entre Validate y Apply
	req := ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.NewFromInt(6), Reason: "Sale"}

	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err, "el clamp acepta la transacción en vez de ir a negativo")
	assert.True(t, res.NewStock.IsZero(), "el stock resultante debe quedar en 0, no en -2")
	require.NotNil(t, res.Transaction, "el clamp también deja registro de auditoría")
}

// Salida por el total exacto deja el stock en cero sin activar el clamp.
func TestApply_SalidaTotalExacta(t *testing.T) {
	item := buildItem(7)
	req := ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.NewFromInt(7), Reason: "Transfer Out"}

	require.NoError(t, ledger.Validate(item, req))
	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)
	assert.True(t, res.NewStock.IsZero())
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

// El ajuste fija el nivel absoluto sin importar el stock previo.
func TestApply_AjusteEsNivelAbsoluto(t *testing.T) {
	item := buildItem(12)
	req := ledger.Request{Type: entity.TxTypeAdjustment, Quantity: decimal.NewFromFloat(8.5), Reason: "Physical Count"}

	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(decimal.NewFromFloat(8.5)),
		"el ajuste es un set absoluto, no un delta")
}

// Ajuste a cero: 12 → 0 y el estado derivado pasa a OutOfStock.
func TestApply_AjusteACero(t *testing.T) {
	item := buildItem(12)
	req := ledger.Request{Type: entity.TxTypeAdjustment, Quantity: decimal.Zero, Reason: "Loss"}

	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)
	assert.True(t, res.NewStock.IsZero())

	item.CurrentStock = res.NewStock
	assert.Equal(t, entity.StatusOutOfStock, item.Status())
}

// ── Validación de forma ───────────────────────────────────────────────────────

func TestValidate_RechazosPorCampo(t *testing.T) {
	item := buildItem(10)
	cases := []struct {
		name  string
		req   ledger.Request
		field string
	}{
		{"tipo desconocido", ledger.Request{Type: "transfer", Quantity: decimal.NewFromInt(1), Reason: "x"}, "type"},
		{"entrada con cantidad cero", ledger.Request{Type: entity.TxTypeIn, Quantity: decimal.Zero, Reason: "x"}, "quantity"},
		{"salida con cantidad negativa", ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.NewFromInt(-3), Reason: "x"}, "quantity"},
		{"ajuste negativo", ledger.Request{Type: entity.TxTypeAdjustment, Quantity: decimal.NewFromInt(-1), Reason: "x"}, "quantity"},
		{"motivo vacío", ledger.Request{Type: entity.TxTypeIn, Quantity: decimal.NewFromInt(1), Reason: "   "}, "reason"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.Validate(item, tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field, "el error debe señalar el campo ofensor")
		})
	}
}

// Apply repite la validación de forma: nunca produce resultado con entrada mal formada.
func TestApply_RechazaFormaInvalida(t *testing.T) {
	item := buildItem(10)
	_, err := ledger.Apply(item, ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.Zero, Reason: "Sale"}, testUserID, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// El motor acepta motivos fuera del vocabulario sugerido (texto libre).
func TestApply_MotivoLibreAceptado(t *testing.T) {
	item := buildItem(10)
	req := ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.NewFromInt(2), Reason: "derrame en planta"}

	res, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)
	assert.Equal(t, "derrame en planta", res.Transaction.Reason)
}

// Apply no muta el artículo recibido: solo describe el par de escrituras.
func TestApply_NoMutaElArticulo(t *testing.T) {
	item := buildItem(20)
	req := ledger.Request{Type: entity.TxTypeOut, Quantity: decimal.NewFromInt(5), Reason: "Usage"}

	_, err := ledger.Apply(item, req, testUserID, testNow)
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(20)),
		"el stock del snapshot no debe cambiar dentro del motor")
}
