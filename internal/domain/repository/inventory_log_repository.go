package repository

import (
	"context"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// InventoryLogRepository define el puerto de persistencia del log de inventario.
// Colección insert-only: no existe Update ni Delete.
type InventoryLogRepository interface {
	Append(ctx context.Context, log *entity.InventoryLog) error
	// ListByOwner lista eventos del owner, más recientes primero. itemID vacío = todos.
	ListByOwner(ctx context.Context, ownerID, itemID string, limit, offset int) ([]*entity.InventoryLog, error)
	// ListByRef lista los eventos que referencian un documento (factura o compra).
	ListByRef(ctx context.Context, ownerID, refID string) ([]*entity.InventoryLog, error)
}
