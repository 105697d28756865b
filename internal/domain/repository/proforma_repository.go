package repository

import "github.com/jhoicas/Textil-api/internal/domain/entity"

// ProformaRepository puerto de persistencia de proformas.
type ProformaRepository interface {
	Create(p *entity.Proforma) error
	GetByID(id string) (*entity.Proforma, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Proforma, error)
	// CountByUser soporta el consecutivo legible del número de proforma.
	CountByUser(userID string) (int, error)
}
