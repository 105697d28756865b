package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Textil-api/internal/application/billing"
	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

const testUserID = "user-1"

// memProformaRepo proformas en memoria. Create replica el índice
// UNIQUE (user_id, number) de la tabla; beforeCreate permite intercalar
// una escritura rival entre el conteo y la inserción.
type memProformaRepo struct {
	proformas    map[string]*entity.Proforma
	beforeCreate func()
}

func newMemProformaRepo() *memProformaRepo {
	return &memProformaRepo{proformas: map[string]*entity.Proforma{}}
}

func (m *memProformaRepo) Create(p *entity.Proforma) error {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}
	for _, q := range m.proformas {
		if q.UserID == p.UserID && q.Number == p.Number {
			return domain.ErrDuplicate
		}
	}
	m.proformas[p.ID] = p
	return nil
}
func (m *memProformaRepo) GetByID(id string) (*entity.Proforma, error) {
	return m.proformas[id], nil
}
func (m *memProformaRepo) ListByUser(userID string, _, _ int) ([]*entity.Proforma, error) {
	var out []*entity.Proforma
	for _, p := range m.proformas {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProformaRepo) CountByUser(userID string) (int, error) {
	n := 0
	for _, p := range m.proformas {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

// memItemRepo solo implementa lo que el caso de uso de proformas consulta.
type memItemRepo struct {
	items map[string]*entity.InventoryItem
}

func (m *memItemRepo) Create(*entity.InventoryItem) error { return nil }
func (m *memItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return m.items[id], nil
}
func (m *memItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return m.items[id], nil
}
func (m *memItemRepo) GetByUserAndSKU(string, string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (m *memItemRepo) ListByUser(string, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (m *memItemRepo) ListAllByUser(string) ([]*entity.InventoryItem, error) { return nil, nil }
func (m *memItemRepo) Update(*entity.InventoryItem) error                    { return nil }
func (m *memItemRepo) UpdateStock(string, decimal.Decimal, time.Time) error  { return nil }
func (m *memItemRepo) Delete(string) error                                   { return nil }

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) Create(*entity.User) error { return nil }
func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }

// fakePDF devuelve bytes fijos sin renderizar nada.
type fakePDF struct{}

func (fakePDF) GenerateProformaPDF(_ context.Context, _ *entity.Proforma, _ *entity.User) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func fixture() (*billing.ProformaUseCase, *memProformaRepo) {
	items := &memItemRepo{items: map[string]*entity.InventoryItem{
		"item-1": {
			ID: "item-1", UserID: testUserID, SKU: "DYE-AZUL-0001", Name: "Colorante azul índigo",
			Unit: "kg", UnitPrice: decimal.NewFromInt(12000),
		},
		"item-ajeno": {
			ID: "item-ajeno", UserID: "otro-usuario", SKU: "CHM-SODA-0001", Name: "Soda cáustica",
			Unit: "kg", UnitPrice: decimal.NewFromInt(3000),
		},
	}}
	users := &memUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: "taller@textil.co", Name: "Taller", BusinessName: "Tintorería La 14"},
	}}
	proformas := newMemProformaRepo()
	return billing.NewProformaUseCase(proformas, items, users, fakePDF{}), proformas
}

// Crear congela el precio del artículo en la línea y calcula los totales.
func TestProformaCreate_CongelaPreciosYTotaliza(t *testing.T) {
	uc, _ := fixture()

	out, err := uc.Create(testUserID, dto.CreateProformaRequest{
		CustomerName: "Confecciones El Progreso",
		Lines: []dto.ProformaLineRequest{
			{ItemID: "item-1", Quantity: decimal.RequireFromString("2.5")},
		},
		Discount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	assert.Equal(t, "Colorante azul índigo", out.Lines[0].Description)
	assert.True(t, out.Lines[0].UnitPrice.Equal(decimal.NewFromInt(12000)),
		"el precio se congela desde el inventario")
	assert.True(t, out.Lines[0].LineTotal.Equal(decimal.NewFromInt(30000)))
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(30000)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(29000)))
}

// El número es un consecutivo legible por usuario y año.
func TestProformaCreate_NumeracionConsecutiva(t *testing.T) {
	uc, _ := fixture()
	year := time.Now().Year()

	req := dto.CreateProformaRequest{
		CustomerName: "Cliente",
		Lines:        []dto.ProformaLineRequest{{ItemID: "item-1", Quantity: decimal.NewFromInt(1)}},
	}
	first, err := uc.Create(testUserID, req)
	require.NoError(t, err)
	second, err := uc.Create(testUserID, req)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("PF-%d-00001", year), first.Number)
	assert.Equal(t, fmt.Sprintf("PF-%d-00002", year), second.Number)
}

// Si una creación rival gana el mismo consecutivo, se relee el conteo y se
// reintenta con el número siguiente en vez de devolver el conflicto.
func TestProformaCreate_NumeroDisputado_Reintenta(t *testing.T) {
	uc, repo := fixture()
	year := time.Now().Year()

	repo.beforeCreate = func() {
		repo.beforeCreate = nil
		repo.proformas["rival"] = &entity.Proforma{
			ID:     "rival",
			UserID: testUserID,
			Number: fmt.Sprintf("PF-%d-00001", year),
		}
	}

	out, err := uc.Create(testUserID, dto.CreateProformaRequest{
		CustomerName: "Cliente",
		Lines:        []dto.ProformaLineRequest{{ItemID: "item-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PF-%d-00002", year), out.Number)
}

// Validaciones: cantidad no positiva, sin líneas, descuento mayor al subtotal.
func TestProformaCreate_Validaciones(t *testing.T) {
	uc, _ := fixture()

	_, err := uc.Create(testUserID, dto.CreateProformaRequest{CustomerName: "C"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "lines", vErr.Field)

	_, err = uc.Create(testUserID, dto.CreateProformaRequest{
		CustomerName: "C",
		Lines:        []dto.ProformaLineRequest{{ItemID: "item-1", Quantity: decimal.Zero}},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "lines[0].quantity", vErr.Field)

	_, err = uc.Create(testUserID, dto.CreateProformaRequest{
		CustomerName: "C",
		Lines:        []dto.ProformaLineRequest{{ItemID: "item-1", Quantity: decimal.NewFromInt(1)}},
		Discount:     decimal.NewFromInt(999999),
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "discount", vErr.Field)
}

// Un artículo de otro usuario no puede entrar en la proforma.
func TestProformaCreate_ArticuloAjeno_Forbidden(t *testing.T) {
	uc, _ := fixture()

	_, err := uc.Create(testUserID, dto.CreateProformaRequest{
		CustomerName: "C",
		Lines:        []dto.ProformaLineRequest{{ItemID: "item-ajeno", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// GetByID respeta la partición por dueño.
func TestProformaGetByID_Particion(t *testing.T) {
	uc, _ := fixture()
	created, err := uc.Create(testUserID, dto.CreateProformaRequest{
		CustomerName: "C",
		Lines:        []dto.ProformaLineRequest{{ItemID: "item-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = uc.GetByID("otro-usuario", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.GetByID(testUserID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

// DownloadPDF entrega los bytes del generador y un nombre basado en el número.
func TestProformaDownloadPDF(t *testing.T) {
	uc, _ := fixture()
	created, err := uc.Create(testUserID, dto.CreateProformaRequest{
		CustomerName: "C",
		Lines:        []dto.ProformaLineRequest{{ItemID: "item-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	pdfBytes, filename, err := uc.DownloadPDF(context.Background(), testUserID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdfBytes)
	assert.Equal(t, "proforma-"+created.Number+".pdf", filename)
}
