package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProformaLineRequest línea solicitada: el precio y la descripción se toman
// del artículo al momento de crear la proforma.
type ProformaLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateProformaRequest body para POST /api/proformas.
type CreateProformaRequest struct {
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email,omitempty"`
	CustomerPhone string                `json:"customer_phone,omitempty"`
	Lines         []ProformaLineRequest `json:"lines"`
	Discount      decimal.Decimal       `json:"discount,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	ValidUntil    *time.Time            `json:"valid_until,omitempty"`
}

// ProformaLineResponse línea con precio congelado.
type ProformaLineResponse struct {
	ItemID      string          `json:"item_id"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ProformaResponse proforma completa.
type ProformaResponse struct {
	ID            string                 `json:"id"`
	Number        string                 `json:"number"`
	CustomerName  string                 `json:"customer_name"`
	CustomerEmail string                 `json:"customer_email,omitempty"`
	CustomerPhone string                 `json:"customer_phone,omitempty"`
	Lines         []ProformaLineResponse `json:"lines"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	Discount      decimal.Decimal        `json:"discount"`
	Total         decimal.Decimal        `json:"total"`
	Notes         string                 `json:"notes,omitempty"`
	ValidUntil    *time.Time             `json:"valid_until,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ProformaListResponse listado paginado.
type ProformaListResponse struct {
	Proformas []ProformaResponse `json:"proformas"`
	Page      PageResponse       `json:"page"`
}
