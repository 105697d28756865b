package billing

import (
	"context"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// ProformaPDFGenerator renderiza la representación imprimible de una proforma.
type ProformaPDFGenerator interface {
	GenerateProformaPDF(ctx context.Context, proforma *entity.Proforma, owner *entity.User) ([]byte, error)
}
