// Package snapshot implementa el adaptador de sincronización: tras cada
// escritura confirmada entrega a los suscriptores del usuario el conjunto
// COMPLETO de artículos y transacciones (no deltas), con las alertas y
// estadísticas ya derivadas. Semántica at-least-once; cada entrega sustituye
// a todas las anteriores, por lo que un suscriptor lento solo ve la última.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/inventory"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
	"github.com/jhoicas/Textil-api/pkg/logger"
)

// Snapshot estado completo de la partición de un usuario en un instante.
// Seq crece de forma monótona por hub: permite a los consumidores descartar
// entregas fuera de orden.
type Snapshot struct {
	Seq          uint64
	TakenAt      time.Time
	Items        []*entity.InventoryItem
	Transactions []*entity.StockTransaction
	Alerts       []inventory.LowStockAlert
	Stats        inventory.Stats
}

type subscriber struct {
	ch chan Snapshot
}

// Hub reconstruye y reparte snapshots por usuario. El motor del ledger nunca
// lo toca directamente: los casos de uso lo notifican tras confirmar escrituras.
type Hub struct {
	itemRepo repository.ItemRepository
	txRepo   repository.TransactionRepository
	log      *logger.Logger

	mu     sync.Mutex
	seq    uint64
	nextID int
	subs   map[string]map[int]*subscriber // userID → subID → suscriptor
	latest map[string]*Snapshot
}

// NewHub construye el hub.
func NewHub(itemRepo repository.ItemRepository, txRepo repository.TransactionRepository, log *logger.Logger) *Hub {
	return &Hub{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		log:      log,
		subs:     make(map[string]map[int]*subscriber),
		latest:   make(map[string]*Snapshot),
	}
}

// Subscribe registra un suscriptor para la partición del usuario y devuelve el
// canal de entregas más la función de cancelación. Si ya existe un snapshot
// reciente se entrega de inmediato.
func (h *Hub) Subscribe(userID string) (<-chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	sub := &subscriber{ch: make(chan Snapshot, 1)}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]*subscriber)
	}
	h.subs[userID][id] = sub

	if snap := h.latest[userID]; snap != nil {
		sub.ch <- *snap
	}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[userID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.subs, userID)
			}
		}
	}
	return sub.ch, cancel
}

// Notify implementa inventory.SnapshotNotifier: reconstruye el snapshot del
// usuario y lo reparte. Best-effort: si la recarga falla se registra y los
// suscriptores conservan la última entrega buena.
func (h *Hub) Notify(ctx context.Context, userID string) {
	if _, err := h.Refresh(ctx, userID); err != nil && h.log != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("snapshot: recarga fallida")
	}
}

// Refresh reconstruye el snapshot desde los repositorios, lo cachea y lo
// reparte a los suscriptores del usuario.
func (h *Hub) Refresh(_ context.Context, userID string) (*Snapshot, error) {
	items, err := h.itemRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}
	txs, err := h.txRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	snap := &Snapshot{
		Seq:          h.seq,
		TakenAt:      time.Now(),
		Items:        items,
		Transactions: txs,
		Alerts:       inventory.DeriveAlerts(items),
		Stats:        inventory.DeriveStats(items),
	}
	h.latest[userID] = snap
	for _, sub := range h.subs[userID] {
		deliver(sub.ch, *snap)
	}
	return snap, nil
}

// Latest devuelve el último snapshot cacheado, reconstruyéndolo si aún no hay.
func (h *Hub) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	h.mu.Lock()
	snap := h.latest[userID]
	h.mu.Unlock()
	if snap != nil {
		return snap, nil
	}
	return h.Refresh(ctx, userID)
}

// deliver entrega con coalescencia: si el buffer está lleno descarta la entrega
// pendiente (quedó obsoleta) y deja la nueva. Nunca bloquea al publicador.
func deliver(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
