package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterTransactionRequest body para POST /api/inventory/transactions.
// Quantity es delta positivo para in/out y nivel absoluto para adjustment.
type RegisterTransactionRequest struct {
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// TransactionResponse registro del ledger; NewStock es el nivel resultante
// (solo se llena en la respuesta del registro, no en listados).
type TransactionResponse struct {
	ID        string           `json:"id"`
	ItemID    string           `json:"item_id"`
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Reason    string           `json:"reason"`
	Reference string           `json:"reference,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	UserID    string           `json:"user_id"`
	Timestamp time.Time        `json:"timestamp"`
	NewStock  *decimal.Decimal `json:"new_stock,omitempty"`
}

// TransactionListResponse historial paginado, timestamp descendente.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         PageResponse          `json:"page"`
}

// LowStockAlertDTO alerta derivada de stock bajo.
type LowStockAlertDTO struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	SKU          string          `json:"sku"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Unit         string          `json:"unit"`
	Severity     string          `json:"severity"` // low | critical
}

// StatsResponse agregados del inventario.
type StatsResponse struct {
	TotalItems      int             `json:"total_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
}

// SnapshotResponse estado completo del usuario tal como lo entrega el hub de
// sincronización: conjuntos enteros, no deltas.
type SnapshotResponse struct {
	Seq          uint64                `json:"seq"`
	TakenAt      time.Time             `json:"taken_at"`
	Items        []ItemResponse        `json:"items"`
	Transactions []TransactionResponse `json:"transactions"`
	Alerts       []LowStockAlertDTO    `json:"alerts"`
	Stats        StatsResponse         `json:"stats"`
}
