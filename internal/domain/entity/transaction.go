package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TxTypeIn         = "in"         // entrada: delta positivo
	TxTypeOut        = "out"        // salida: delta positivo que se resta
	TxTypeAdjustment = "adjustment" // ajuste: nivel absoluto, no delta
)

// IsValidTxType indica si el tipo pertenece a las tres variantes del ledger.
func IsValidTxType(t string) bool {
	return t == TxTypeIn || t == TxTypeOut || t == TxTypeAdjustment
}

// StockTransaction registro inmutable del ledger: se crea exactamente una vez
// cuando el motor acepta una transacción y nunca se modifica ni se borra.
// ItemID es referencia débil: el artículo puede borrarse después y el registro
// histórico permanece.
type StockTransaction struct {
	ID        string
	ItemID    string
	UserID    string
	Type      string          // in, out, adjustment
	Quantity  decimal.Decimal // delta para in/out; nivel absoluto para adjustment
	Reason    string          // obligatorio; vocabulario sugerido, texto libre aceptado
	Reference string          // ej. número de orden de compra
	Notes     string
	Timestamp time.Time // fijado al momento del commit
}
