package repository

import (
	"context"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia del catálogo de artículos.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Item, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// Delete elimina el artículo del catálogo; el StockRecord y los logs se conservan.
	Delete(ctx context.Context, ownerID, id string) error
}
