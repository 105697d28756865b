package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/ledger"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// RegisterTransactionUseCase registra transacciones del ledger (in, out,
// adjustment) de forma transaccional: bloqueo de fila (SELECT FOR UPDATE) y el
// par actualización de stock + registro de auditoría en un solo Commit.
type RegisterTransactionUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	txRepo   repository.TransactionRepository
	notifier SnapshotNotifier
}

// NewRegisterTransactionUseCase construye el caso de uso.
func NewRegisterTransactionUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	notifier SnapshotNotifier,
) *RegisterTransactionUseCase {
	return &RegisterTransactionUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		txRepo:   txRepo,
		notifier: notifier,
	}
}

// Register valida la solicitud contra el snapshot actual (camino interactivo:
// rechazo antes de intentar ninguna escritura) y luego aplica dentro de una
// transacción de BD. La fila del artículo se relee con bloqueo: si otra sesión
// movió el stock después de la validación, el motor recalcula contra el valor
// fresco y el clamp a cero cubre el sobregiro de la carrera.
func (uc *RegisterTransactionUseCase) Register(
	ctx context.Context,
	userID string,
	in dto.RegisterTransactionRequest,
) (*dto.TransactionResponse, error) {
	if in.ItemID == "" {
		return nil, domain.NewValidationError("item_id", "el artículo es obligatorio")
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.UserID != userID {
		return nil, domain.ErrForbidden
	}

	req := ledger.Request{
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Notes:     in.Notes,
	}
	if err := ledger.Validate(item, req); err != nil {
		return nil, err
	}

	now := time.Now()
	var result *ledger.Result
	err = uc.txRunner.Run(ctx, func(items repository.ItemRepository, txs repository.TransactionRepository) error {
		fresh, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if fresh == nil {
			// El artículo desapareció entre la validación y el commit.
			return domain.ErrItemNotFound
		}
		res, err := ledger.Apply(fresh, req, userID, now)
		if err != nil {
			return err
		}
		if err := items.UpdateStock(fresh.ID, res.NewStock, now); err != nil {
			return err
		}
		if err := txs.Create(res.Transaction); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.Notify(ctx, userID)
	}
	return toTransactionResponse(result.Transaction, &result.NewStock), nil
}

// List historial del usuario, timestamp descendente; itemID vacío lista todo.
// Tolera artículos ya borrados: el historial es append-only.
func (uc *RegisterTransactionUseCase) List(userID, itemID string, limit, offset int) (*dto.TransactionListResponse, error) {
	list, err := uc.txRepo.ListByUser(userID, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	txs := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		txs = append(txs, *toTransactionResponse(tx, nil))
	}
	return &dto.TransactionListResponse{
		Transactions: txs,
		Page:         dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toTransactionResponse(tx *entity.StockTransaction, newStock *decimal.Decimal) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:        tx.ID,
		ItemID:    tx.ItemID,
		Type:      tx.Type,
		Quantity:  tx.Quantity,
		Reason:    tx.Reason,
		Reference: tx.Reference,
		Notes:     tx.Notes,
		UserID:    tx.UserID,
		Timestamp: tx.Timestamp,
		NewStock:  newStock,
	}
}
