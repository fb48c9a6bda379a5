package repository

import (
	"context"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas de venta.
// GetByID devuelve cabecera con líneas; Create y Update escriben ambas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Invoice, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Invoice, error)
	// Update reemplaza cabecera y líneas. Solo válido para borradores; la regla la
	// impone el caso de uso, no el repositorio.
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, ownerID, id string) error
}
