package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proforma cotización comercial sin valor fiscal. No mueve stock: los precios
// y descripciones de las líneas se congelan al crearla.
type Proforma struct {
	ID            string
	UserID        string
	Number        string // consecutivo legible, ej. PF-2026-00042
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Lines         []ProformaLine
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	ValidUntil    *time.Time
	CreatedAt     time.Time
}

// ProformaLine línea de proforma con precio congelado del artículo.
type ProformaLine struct {
	ItemID      string          `json:"item_id"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}
