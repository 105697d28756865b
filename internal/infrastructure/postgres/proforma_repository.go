package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

var _ repository.ProformaRepository = (*ProformaRepo)(nil)

const proformaColumns = `id, user_id, number, customer_name, customer_email, customer_phone,
		lines, subtotal, discount, total, notes, valid_until, created_at`

// ProformaRepo implementación de ProformaRepository sobre PostgreSQL.
// Las líneas se guardan como JSONB: tienen precios congelados y nunca se
// editan, así que no ameritan tabla propia.
type ProformaRepo struct {
	q Querier
}

// NewProformaRepository construye el adaptador de proformas. Pasar pool o tx (Querier).
func NewProformaRepository(q Querier) *ProformaRepo {
	return &ProformaRepo{q: q}
}

// Create persiste una proforma con sus líneas serializadas.
func (r *ProformaRepo) Create(p *entity.Proforma) error {
	linesJSON, err := json.Marshal(p.Lines)
	if err != nil {
		return fmt.Errorf("marshal proforma lines: %w", err)
	}
	query := `
		INSERT INTO proformas (` + proformaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(context.Background(), query,
		p.ID, p.UserID, p.Number, p.CustomerName, p.CustomerEmail, p.CustomerPhone,
		linesJSON, p.Subtotal, p.Discount, p.Total, p.Notes, p.ValidUntil, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proforma: %w", err)
	}
	return nil
}

// GetByID obtiene una proforma por ID. Devuelve nil sin error si no existe.
func (r *ProformaRepo) GetByID(id string) (*entity.Proforma, error) {
	query := `SELECT ` + proformaColumns + ` FROM proformas WHERE id = $1`
	var p entity.Proforma
	var linesJSON []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.UserID, &p.Number, &p.CustomerName, &p.CustomerEmail, &p.CustomerPhone,
		&linesJSON, &p.Subtotal, &p.Discount, &p.Total, &p.Notes, &p.ValidUntil, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proforma: %w", err)
	}
	if err := json.Unmarshal(linesJSON, &p.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal proforma lines: %w", err)
	}
	return &p, nil
}

// ListByUser lista proformas del usuario, más recientes primero.
func (r *ProformaRepo) ListByUser(userID string, limit, offset int) ([]*entity.Proforma, error) {
	query := `
		SELECT ` + proformaColumns + ` FROM proformas
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proformas: %w", err)
	}
	defer rows.Close()

	var proformas []*entity.Proforma
	for rows.Next() {
		var p entity.Proforma
		var linesJSON []byte
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Number, &p.CustomerName, &p.CustomerEmail, &p.CustomerPhone,
			&linesJSON, &p.Subtotal, &p.Discount, &p.Total, &p.Notes, &p.ValidUntil, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan proforma: %w", err)
		}
		if err := json.Unmarshal(linesJSON, &p.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal proforma lines: %w", err)
		}
		proformas = append(proformas, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proformas: %w", err)
	}
	return proformas, nil
}

// CountByUser cuenta las proformas del usuario (consecutivo del número).
func (r *ProformaRepo) CountByUser(userID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM proformas WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count proformas: %w", err)
	}
	return count, nil
}
