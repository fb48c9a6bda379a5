package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación de VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un proveedor.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, owner_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.OwnerID, v.Name, v.Email, v.Phone, v.Address, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor del owner. Devuelve nil si no existe.
func (r *VendorRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Vendor, error) {
	query := `
		SELECT id, owner_id, name, email, phone, address, created_at, updated_at
		FROM vendors WHERE owner_id = $1 AND id = $2`
	var v entity.Vendor
	err := r.q.QueryRow(ctx, query, ownerID, id).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// ListByOwner lista los proveedores del owner.
func (r *VendorRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Vendor, error) {
	query := `
		SELECT id, owner_id, name, email, phone, address, created_at, updated_at
		FROM vendors WHERE owner_id = $1
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualiza los datos del proveedor.
func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	query := `
		UPDATE vendors SET name = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, v.OwnerID, v.ID, v.Name, v.Email, v.Phone, v.Address, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}

// Delete elimina el proveedor.
func (r *VendorRepo) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM vendors WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}
