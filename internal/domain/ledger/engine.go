// Package ledger implementa el motor del libro de inventario: la única vía
// autorizada para cambiar el stock de un artículo. Todas las funciones son
// puras sobre un snapshot en memoria; el motor describe el par de escrituras
// (stock nuevo + registro de transacción) y el caller lo persiste como unidad.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// Request solicitud de transacción contra un artículo.
type Request struct {
	Type      string          // entity.TxTypeIn, TxTypeOut o TxTypeAdjustment
	Quantity  decimal.Decimal // delta positivo (in/out) o nivel absoluto >= 0 (adjustment)
	Reason    string          // obligatorio; texto libre
	Reference string
	Notes     string
}

// Result par de escrituras que el caller debe persistir como unidad lógica.
// El motor nunca emite la transacción sin el stock nuevo ni al revés.
type Result struct {
	NewStock    decimal.Decimal
	Transaction *entity.StockTransaction
}

// validateShape reglas comunes a Validate y Apply: tipo conocido, cantidad con
// el signo correcto para el tipo y motivo no vacío.
func validateShape(req Request) error {
	switch req.Type {
	case entity.TxTypeIn, entity.TxTypeOut:
		if !req.Quantity.GreaterThan(decimal.Zero) {
			return domain.NewValidationError("quantity", "la cantidad debe ser mayor que cero")
		}
	case entity.TxTypeAdjustment:
		if req.Quantity.LessThan(decimal.Zero) {
			return domain.NewValidationError("quantity", "el nivel ajustado no puede ser negativo")
		}
	default:
		return domain.NewValidationError("type", "tipo de transacción desconocido: "+req.Type)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return domain.NewValidationError("reason", "el motivo es obligatorio")
	}
	return nil
}

// Validate valida la solicitud en el camino interactivo, antes de intentar
// cualquier escritura. Para salidas rechaza con InsufficientStockError si la
// cantidad excede el stock actual, citando el disponible con su unidad.
func Validate(item *entity.InventoryItem, req Request) error {
	if err := validateShape(req); err != nil {
		return err
	}
	if req.Type == entity.TxTypeOut && req.Quantity.GreaterThan(item.CurrentStock) {
		return &domain.InsufficientStockError{
			Available: item.CurrentStock,
			Requested: req.Quantity,
			Unit:      item.Unit,
		}
	}
	return nil
}

// Apply calcula el nuevo nivel de stock y construye el registro de auditoría:
//
//	in:         stock + cantidad
//	out:        max(0, stock - cantidad) — el clamp a cero cubre la carrera en
//	            la que otra sesión movió el stock entre Validate y el commit
//	adjustment: nivel absoluto = cantidad
//
// No muta el artículo recibido: devuelve el par de escrituras a persistir.
func Apply(item *entity.InventoryItem, req Request, userID string, now time.Time) (*Result, error) {
	if err := validateShape(req); err != nil {
		return nil, err
	}

	var newStock decimal.Decimal
	switch req.Type {
	case entity.TxTypeIn:
		newStock = item.CurrentStock.Add(req.Quantity)
	case entity.TxTypeOut:
		newStock = item.CurrentStock.Sub(req.Quantity)
		if newStock.LessThan(decimal.Zero) {
			newStock = decimal.Zero
		}
	case entity.TxTypeAdjustment:
		newStock = req.Quantity
	}

	tx := &entity.StockTransaction{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		UserID:    userID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reason:    strings.TrimSpace(req.Reason),
		Reference: req.Reference,
		Notes:     req.Notes,
		Timestamp: now,
	}
	return &Result{NewStock: newStock, Transaction: tx}, nil
}
