package repository

import "github.com/jhoicas/Textil-api/internal/domain/entity"

// TransactionRepository puerto del historial del ledger. Solo inserta y lee:
// los registros son inmutables y nunca se borran, ni siquiera cuando el
// artículo referenciado deja de existir.
type TransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	// ListByUser lista transacciones del usuario ordenadas por timestamp
	// descendente; itemID vacío lista todas.
	ListByUser(userID, itemID string, limit, offset int) ([]*entity.StockTransaction, error)
	// ListAllByUser devuelve el historial completo (snapshot para el hub).
	ListAllByUser(userID string) ([]*entity.StockTransaction, error)
}
