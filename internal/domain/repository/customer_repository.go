package repository

import (
	"context"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Customer, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, ownerID, id string) error
}
