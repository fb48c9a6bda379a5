package repository

import (
	"context"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// VendorRepository define el puerto de persistencia para proveedores.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Vendor, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	Delete(ctx context.Context, ownerID, id string) error
}
