package repository

import (
	"context"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para compras a proveedor.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Bill, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Bill, error)
	Delete(ctx context.Context, ownerID, id string) error
}
