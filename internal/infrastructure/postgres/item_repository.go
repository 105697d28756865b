package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, user_id, sku, name, category, unit, current_stock, min_stock, max_stock,
		unit_price, supplier, location, batch_number, expiry_date, notes, created_at, last_updated`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UserID, item.SKU, item.Name, item.Category, item.Unit,
		item.CurrentStock, item.MinStock, item.MaxStock, item.UnitPrice,
		item.Supplier, item.Location, item.BatchNumber, item.ExpiryDate, item.Notes,
		item.CreatedAt, item.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve nil sin error si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetForUpdate obtiene el artículo bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción del TxRunner.
func (r *ItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// GetByUserAndSKU obtiene un artículo por usuario y SKU.
func (r *ItemRepo) GetByUserAndSKU(userID, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE user_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, sku), "get item by sku")
}

// ListByUser lista artículos del usuario con paginación, por nombre ascendente.
func (r *ItemRepo) ListByUser(userID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + ` FROM inventory_items
		WHERE user_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return r.scanMany(rows)
}

// ListAllByUser devuelve el conjunto completo de artículos del usuario (snapshot).
func (r *ItemRepo) ListAllByUser(userID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE user_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list all items: %w", err)
	}
	return r.scanMany(rows)
}

// Update guarda los campos editables del artículo. Nunca toca current_stock:
// el nivel de stock solo lo mueve UpdateStock desde el motor del ledger.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			sku = $2, name = $3, category = $4, unit = $5, min_stock = $6, max_stock = $7,
			unit_price = $8, supplier = $9, location = $10, batch_number = $11,
			expiry_date = $12, notes = $13, last_updated = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, item.Category, item.Unit, item.MinStock, item.MaxStock,
		item.UnitPrice, item.Supplier, item.Location, item.BatchNumber,
		item.ExpiryDate, item.Notes, item.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// UpdateStock fija el nuevo nivel de stock y last_updated.
func (r *ItemRepo) UpdateStock(id string, newStock decimal.Decimal, at time.Time) error {
	query := `UPDATE inventory_items SET current_stock = $2, last_updated = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, newStock, at)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete elimina el artículo. Las transacciones históricas no se tocan.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.UserID, &i.SKU, &i.Name, &i.Category, &i.Unit,
		&i.CurrentStock, &i.MinStock, &i.MaxStock, &i.UnitPrice,
		&i.Supplier, &i.Location, &i.BatchNumber, &i.ExpiryDate, &i.Notes,
		&i.CreatedAt, &i.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}

func (r *ItemRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	defer rows.Close()
	var items []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		err := rows.Scan(
			&i.ID, &i.UserID, &i.SKU, &i.Name, &i.Category, &i.Unit,
			&i.CurrentStock, &i.MinStock, &i.MaxStock, &i.UnitPrice,
			&i.Supplier, &i.Location, &i.BatchNumber, &i.ExpiryDate, &i.Notes,
			&i.CreatedAt, &i.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
