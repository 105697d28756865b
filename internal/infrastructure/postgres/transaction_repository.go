package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const txColumns = `id, item_id, user_id, type, quantity, reason, reference, notes, occurred_at`

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el historial es inmutable y no
// tiene foreign key hacia inventory_items, así el registro sobrevive al borrado
// del artículo.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un registro del ledger.
func (r *TransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ItemID, tx.UserID, tx.Type, tx.Quantity,
		tx.Reason, tx.Reference, tx.Notes, tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Devuelve nil sin error si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ItemID, &t.UserID, &t.Type, &t.Quantity,
		&t.Reason, &t.Reference, &t.Notes, &t.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListByUser lista transacciones del usuario, más recientes primero.
// itemID vacío lista todas las del usuario.
func (r *TransactionRepo) ListByUser(userID, itemID string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txColumns + ` FROM stock_transactions
		WHERE user_id = $1 AND ($2 = '' OR item_id = $2)
		ORDER BY occurred_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, userID, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return r.scanMany(rows)
}

// ListAllByUser devuelve el historial completo del usuario (snapshot).
func (r *TransactionRepo) ListAllByUser(userID string) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txColumns + ` FROM stock_transactions
		WHERE user_id = $1 ORDER BY occurred_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	return r.scanMany(rows)
}

func (r *TransactionRepo) scanMany(rows pgx.Rows) ([]*entity.StockTransaction, error) {
	defer rows.Close()
	var txs []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		err := rows.Scan(
			&t.ID, &t.ItemID, &t.UserID, &t.Type, &t.Quantity,
			&t.Reason, &t.Reference, &t.Notes, &t.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
