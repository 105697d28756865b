package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Textil-api/internal/application/snapshot"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/inventory"
)

const hubUser = "user-1"

// fakeItemRepo snapshot de artículos en memoria para el hub.
type fakeItemRepo struct{ items []*entity.InventoryItem }

func (f *fakeItemRepo) Create(*entity.InventoryItem) error                       { return nil }
func (f *fakeItemRepo) GetByID(string) (*entity.InventoryItem, error)            { return nil, nil }
func (f *fakeItemRepo) GetForUpdate(string) (*entity.InventoryItem, error)       { return nil, nil }
func (f *fakeItemRepo) GetByUserAndSKU(string, string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeItemRepo) ListByUser(string, int, int) ([]*entity.InventoryItem, error) {
	return f.items, nil
}
func (f *fakeItemRepo) ListAllByUser(string) ([]*entity.InventoryItem, error) { return f.items, nil }
func (f *fakeItemRepo) Update(*entity.InventoryItem) error                    { return nil }
func (f *fakeItemRepo) UpdateStock(string, decimal.Decimal, time.Time) error  { return nil }
func (f *fakeItemRepo) Delete(string) error                                   { return nil }

type fakeTxRepo struct{ txs []*entity.StockTransaction }

func (f *fakeTxRepo) Create(*entity.StockTransaction) error                { return nil }
func (f *fakeTxRepo) GetByID(string) (*entity.StockTransaction, error)     { return nil, nil }
func (f *fakeTxRepo) ListByUser(string, string, int, int) ([]*entity.StockTransaction, error) {
	return f.txs, nil
}
func (f *fakeTxRepo) ListAllByUser(string) ([]*entity.StockTransaction, error) { return f.txs, nil }

func lowItem(id string, stock float64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           id,
		UserID:       hubUser,
		Name:         "tinte " + id,
		Unit:         "kg",
		CurrentStock: decimal.NewFromFloat(stock),
		MinStock:     decimal.NewFromInt(10),
		UnitPrice:    decimal.NewFromInt(2),
	}
}

// Tras Notify, el suscriptor recibe el conjunto completo con alertas derivadas.
func TestHub_EntregaSnapshotCompleto(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []*entity.InventoryItem{lowItem("a", 5), lowItem("b", 50)}}
	hub := snapshot.NewHub(itemRepo, &fakeTxRepo{}, nil)

	ch, cancel := hub.Subscribe(hubUser)
	defer cancel()

	hub.Notify(context.Background(), hubUser)

	select {
	case snap := <-ch:
		assert.Len(t, snap.Items, 2, "el snapshot lleva el conjunto completo, no deltas")
		require.Len(t, snap.Alerts, 1)
		assert.Equal(t, "a", snap.Alerts[0].ItemID)
		assert.Equal(t, inventory.SeverityLow, snap.Alerts[0].Severity)
		assert.Equal(t, 2, snap.Stats.TotalItems)
	case <-time.After(time.Second):
		t.Fatal("el suscriptor no recibió el snapshot")
	}
}

// Un suscriptor lento solo ve la última entrega: las intermedias se descartan.
func TestHub_CoalescenciaUltimoGana(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []*entity.InventoryItem{lowItem("a", 5)}}
	hub := snapshot.NewHub(itemRepo, &fakeTxRepo{}, nil)

	ch, cancel := hub.Subscribe(hubUser)
	defer cancel()

	// Tres notificaciones sin consumir: el buffer es 1 y sustituye.
	hub.Notify(context.Background(), hubUser)
	hub.Notify(context.Background(), hubUser)
	itemRepo.items = append(itemRepo.items, lowItem("b", 3))
	hub.Notify(context.Background(), hubUser)

	snap := <-ch
	assert.Len(t, snap.Items, 2, "debe entregarse el estado más reciente")

	select {
	case stale := <-ch:
		t.Fatalf("no debía quedar entrega pendiente, llegó seq %d", stale.Seq)
	default:
	}
}

// Seq crece de forma monótona entre refrescos.
func TestHub_SeqMonotona(t *testing.T) {
	hub := snapshot.NewHub(&fakeItemRepo{}, &fakeTxRepo{}, nil)

	s1, err := hub.Refresh(context.Background(), hubUser)
	require.NoError(t, err)
	s2, err := hub.Refresh(context.Background(), hubUser)
	require.NoError(t, err)
	assert.Greater(t, s2.Seq, s1.Seq)
}

// Un suscriptor nuevo recibe de inmediato el último snapshot cacheado.
func TestHub_SuscriptorNuevoRecibeUltimo(t *testing.T) {
	hub := snapshot.NewHub(&fakeItemRepo{items: []*entity.InventoryItem{lowItem("a", 5)}}, &fakeTxRepo{}, nil)
	hub.Notify(context.Background(), hubUser)

	ch, cancel := hub.Subscribe(hubUser)
	defer cancel()

	select {
	case snap := <-ch:
		assert.Len(t, snap.Items, 1)
	case <-time.After(time.Second):
		t.Fatal("el suscriptor nuevo debía recibir el snapshot cacheado")
	}
}

// Latest reconstruye bajo demanda si no hay snapshot cacheado.
func TestHub_LatestReconstruye(t *testing.T) {
	hub := snapshot.NewHub(&fakeItemRepo{items: []*entity.InventoryItem{lowItem("a", 0)}}, &fakeTxRepo{}, nil)

	snap, err := hub.Latest(context.Background(), hubUser)
	require.NoError(t, err)
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, inventory.SeverityCritical, snap.Alerts[0].Severity)
}

// Tras cancelar, el suscriptor no recibe más entregas.
func TestHub_CancelDejaDeEntregar(t *testing.T) {
	hub := snapshot.NewHub(&fakeItemRepo{}, &fakeTxRepo{}, nil)

	ch, cancel := hub.Subscribe(hubUser)
	cancel()
	hub.Notify(context.Background(), hubUser)

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("suscriptor cancelado no debía recibir entregas")
		}
	default:
	}
}
