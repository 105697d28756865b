package inventory

import (
	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// ToItemResponses convierte entidades a DTOs (snapshot del hub).
func ToItemResponses(items []*entity.InventoryItem) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toItemResponse(item))
	}
	return out
}

// ToTransactionResponses convierte registros del ledger a DTOs, sin NewStock
// (solo la respuesta del registro lo lleva).
func ToTransactionResponses(txs []*entity.StockTransaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *toTransactionResponse(tx, nil))
	}
	return out
}
