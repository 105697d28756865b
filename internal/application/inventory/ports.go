package inventory

import (
	"context"

	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, con repositorios atados
// a esa transacción. Garantiza que la actualización de stock y el registro del
// ledger se persistan como unidad: o ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// SnapshotNotifier avisa que los datos del usuario cambiaron para que el hub
// de sincronización reparta un snapshot fresco. Best-effort: un fallo de
// notificación no revierte la escritura ya confirmada.
type SnapshotNotifier interface {
	Notify(ctx context.Context, userID string)
}
