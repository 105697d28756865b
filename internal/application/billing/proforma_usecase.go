package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// maxNumberRetries acota los reintentos cuando dos creaciones concurrentes
// chocan en el mismo número consecutivo.
const maxNumberRetries = 2

// ProformaUseCase crea y consulta proformas. Una proforma es una cotización:
// congela precios y descripciones del inventario actual pero NO mueve stock
// (la salida de stock llega después, como transacción del ledger, si se vende).
type ProformaUseCase struct {
	proformaRepo repository.ProformaRepository
	itemRepo     repository.ItemRepository
	userRepo     repository.UserRepository
	generator    ProformaPDFGenerator
}

// NewProformaUseCase construye el caso de uso.
func NewProformaUseCase(
	proformaRepo repository.ProformaRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	generator ProformaPDFGenerator,
) *ProformaUseCase {
	return &ProformaUseCase{
		proformaRepo: proformaRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		generator:    generator,
	}
}

// Create valida y crea la proforma con precios congelados del inventario.
func (uc *ProformaUseCase) Create(userID string, in dto.CreateProformaRequest) (*dto.ProformaResponse, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, domain.NewValidationError("customer_name", "el cliente es obligatorio")
	}
	if len(in.Lines) == 0 {
		return nil, domain.NewValidationError("lines", "la proforma necesita al menos una línea")
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError("discount", "el descuento no puede ser negativo")
	}

	subtotal := decimal.Zero
	lines := make([]entity.ProformaLine, 0, len(in.Lines))
	for i, lineReq := range in.Lines {
		if !lineReq.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidationError(fmt.Sprintf("lines[%d].quantity", i), "la cantidad debe ser mayor que cero")
		}
		item, err := uc.itemRepo.GetByID(lineReq.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		if item.UserID != userID {
			return nil, domain.ErrForbidden
		}
		lineTotal := lineReq.Quantity.Mul(item.UnitPrice)
		lines = append(lines, entity.ProformaLine{
			ItemID:      item.ID,
			SKU:         item.SKU,
			Description: item.Name,
			Unit:        item.Unit,
			Quantity:    lineReq.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	if in.Discount.GreaterThan(subtotal) {
		return nil, domain.NewValidationError("discount", "el descuento no puede superar el subtotal")
	}

	now := time.Now()
	proforma := &entity.Proforma{
		ID:            uuid.New().String(),
		UserID:        userID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Lines:         lines,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Total:         subtotal.Sub(in.Discount),
		Notes:         in.Notes,
		ValidUntil:    in.ValidUntil,
		CreatedAt:     now,
	}

	// Dos creaciones concurrentes del mismo usuario pueden disputar el mismo
	// consecutivo. El índice UNIQUE (user_id, number) descarta al perdedor;
	// aquí se relee el conteo y se reintenta con el siguiente número.
	for attempt := 0; ; attempt++ {
		count, err := uc.proformaRepo.CountByUser(userID)
		if err != nil {
			return nil, err
		}
		proforma.Number = fmt.Sprintf("PF-%d-%05d", now.Year(), count+1)
		err = uc.proformaRepo.Create(proforma)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt >= maxNumberRetries {
			return nil, err
		}
	}
	return toProformaResponse(proforma), nil
}

// GetByID obtiene una proforma verificando al dueño.
func (uc *ProformaUseCase) GetByID(userID, id string) (*dto.ProformaResponse, error) {
	p, err := uc.ownedProforma(userID, id)
	if err != nil {
		return nil, err
	}
	return toProformaResponse(p), nil
}

// List lista proformas del usuario, más recientes primero.
func (uc *ProformaUseCase) List(userID string, limit, offset int) (*dto.ProformaListResponse, error) {
	list, err := uc.proformaRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProformaResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProformaResponse(p))
	}
	return &dto.ProformaListResponse{
		Proformas: out,
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DownloadPDF genera la representación imprimible de la proforma.
func (uc *ProformaUseCase) DownloadPDF(ctx context.Context, userID, id string) (pdfBytes []byte, filename string, err error) {
	p, err := uc.ownedProforma(userID, id)
	if err != nil {
		return nil, "", err
	}
	owner, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", err
	}
	if owner == nil {
		return nil, "", domain.ErrUserNotFound
	}
	bytes, err := uc.generator.GenerateProformaPDF(ctx, p, owner)
	if err != nil {
		return nil, "", fmt.Errorf("proforma: generar pdf: %w", err)
	}
	return bytes, fmt.Sprintf("proforma-%s.pdf", p.Number), nil
}

func (uc *ProformaUseCase) ownedProforma(userID, id string) (*entity.Proforma, error) {
	p, err := uc.proformaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func toProformaResponse(p *entity.Proforma) *dto.ProformaResponse {
	lines := make([]dto.ProformaLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, dto.ProformaLineResponse{
			ItemID:      l.ItemID,
			SKU:         l.SKU,
			Description: l.Description,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return &dto.ProformaResponse{
		ID:            p.ID,
		Number:        p.Number,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		CustomerPhone: p.CustomerPhone,
		Lines:         lines,
		Subtotal:      p.Subtotal,
		Discount:      p.Discount,
		Total:         p.Total,
		Notes:         p.Notes,
		ValidUntil:    p.ValidUntil,
		CreatedAt:     p.CreatedAt,
	}
}
