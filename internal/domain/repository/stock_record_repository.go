package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// StockRecordRepository define el puerto para el ledger de stock por (owner, item).
// ApplyDelta es la única operación de escritura: create-if-absent + incremento atómico
// a nivel de storage, nunca read-modify-write desde el caller.
type StockRecordRepository interface {
	// Get devuelve el registro actual, o un registro cero implícito si no existe.
	Get(ctx context.Context, ownerID, itemID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una transacción;
	// una fila inexistente se devuelve como registro cero sin bloquear nada.
	GetForUpdate(ctx context.Context, ownerID, itemID string) (*entity.StockRecord, error)
	// ApplyDelta incrementa quantity de forma atómica con upsert y sobreescribe
	// item_name/unit/updated_at (last-writer-wins). Devuelve la cantidad resultante.
	ApplyDelta(ctx context.Context, rec *entity.StockRecord, delta decimal.Decimal) (decimal.Decimal, error)
	// ListByOwner lista los registros de stock del owner, más recientes primero.
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.StockRecord, error)
}
