package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación del log de inventario sobre PostgreSQL (pool o tx).
// Insert-only: este adaptador no expone UPDATE ni DELETE.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append persiste un evento de inventario.
func (r *InventoryLogRepo) Append(ctx context.Context, log *entity.InventoryLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_logs (id, owner_id, item_id, item_name, change, reason, ref_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	refID := (*string)(nil)
	if log.RefID != "" {
		refID = &log.RefID
	}
	_, err := r.q.Exec(ctx, query,
		log.ID, log.OwnerID, log.ItemID, log.ItemName,
		log.Change, log.Reason, refID, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append inventory log: %w", err)
	}
	return nil
}

// ListByOwner lista eventos del owner, más recientes primero. itemID vacío = todos.
func (r *InventoryLogRepo) ListByOwner(ctx context.Context, ownerID, itemID string, limit, offset int) ([]*entity.InventoryLog, error) {
	query := `
		SELECT id, owner_id, item_id, item_name, change, reason, ref_id, created_at
		FROM inventory_logs WHERE owner_id = $1`
	args := []any{ownerID}
	pos := 2
	if itemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, itemID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ListByRef lista los eventos que referencian un documento.
func (r *InventoryLogRepo) ListByRef(ctx context.Context, ownerID, refID string) ([]*entity.InventoryLog, error) {
	query := `
		SELECT id, owner_id, item_id, item_name, change, reason, ref_id, created_at
		FROM inventory_logs WHERE owner_id = $1 AND ref_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, ownerID, refID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs by ref: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*entity.InventoryLog, error) {
	var l entity.InventoryLog
	var refID *string
	if err := row.Scan(&l.ID, &l.OwnerID, &l.ItemID, &l.ItemName, &l.Change, &l.Reason, &refID, &l.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan inventory log: %w", err)
	}
	if refID != nil {
		l.RefID = *refID
	}
	return &l, nil
}
