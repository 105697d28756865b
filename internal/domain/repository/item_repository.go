package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia de artículos. Cada escritura se aplica
// completa o reporta fallo: el motor nunca observa escrituras parciales.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate obtiene el artículo bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	GetByUserAndSKU(userID, sku string) (*entity.InventoryItem, error)
	ListByUser(userID string, limit, offset int) ([]*entity.InventoryItem, error)
	// ListAllByUser devuelve el conjunto completo de artículos del usuario
	// (snapshot para alertas, estadísticas y el hub de sincronización).
	ListAllByUser(userID string) ([]*entity.InventoryItem, error)
	// Update guarda los campos editables; nunca toca CurrentStock.
	Update(item *entity.InventoryItem) error
	// UpdateStock fija el nuevo nivel de stock y LastUpdated. Única vía de
	// mutación de stock, siempre emparejada con TransactionRepository.Create.
	UpdateStock(id string, newStock decimal.Decimal, at time.Time) error
	Delete(id string) error
}
