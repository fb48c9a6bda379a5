package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-ledger/internal/domain"
	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del catálogo de artículos sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, owner_id, name, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Unit, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo del owner. Devuelve nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Item, error) {
	query := `
		SELECT id, owner_id, name, unit, created_at, updated_at
		FROM items WHERE owner_id = $1 AND id = $2`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, ownerID, id).Scan(
		&it.ID, &it.OwnerID, &it.Name, &it.Unit, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// ListByOwner lista el catálogo del owner.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, owner_id, name, unit, created_at, updated_at
		FROM items WHERE owner_id = $1
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Unit, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza nombre y unidad.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $3, unit = $4, updated_at = $5
		WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, item.OwnerID, item.ID, item.Name, item.Unit, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina el artículo. stock_records e inventory_logs no tienen FK hacia items:
// el historial sobrevive al catálogo.
func (r *ItemRepo) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM items WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
