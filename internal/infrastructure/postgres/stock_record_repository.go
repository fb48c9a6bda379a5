package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación del ledger de stock sobre PostgreSQL (pool o tx).
// PK compuesta (owner_id, item_id): a lo más un registro por par, y todo acceso lleva
// owner_id, así que ninguna consulta puede cruzar tenants.
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Get obtiene el registro actual; un par nunca ajustado se devuelve como registro cero.
func (r *StockRecordRepo) Get(ctx context.Context, ownerID, itemID string) (*entity.StockRecord, error) {
	query := `
		SELECT owner_id, item_id, item_name, unit, quantity, updated_at
		FROM stock_records WHERE owner_id = $1 AND item_id = $2`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, ownerID, itemID).Scan(
		&s.OwnerID, &s.ItemID, &s.ItemName, &s.Unit, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{OwnerID: ownerID, ItemID: itemID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE). Lo usa el
// flujo de venta para verificar y descontar bajo el mismo bloqueo.
func (r *StockRecordRepo) GetForUpdate(ctx context.Context, ownerID, itemID string) (*entity.StockRecord, error) {
	query := `
		SELECT owner_id, item_id, item_name, unit, quantity, updated_at
		FROM stock_records WHERE owner_id = $1 AND item_id = $2
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, ownerID, itemID).Scan(
		&s.OwnerID, &s.ItemID, &s.ItemName, &s.Unit, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{OwnerID: ownerID, ItemID: itemID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta incrementa quantity de forma atómica con upsert: create-if-absent y luego
// suma a nivel de fila, nunca read-modify-write del caller. Las copias de visualización
// (item_name, unit) se sobreescriben con lo que trae el ajuste (last-writer-wins).
func (r *StockRecordRepo) ApplyDelta(ctx context.Context, rec *entity.StockRecord, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock_records (owner_id, item_id, item_name, unit, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (owner_id, item_id)
		DO UPDATE SET
			quantity  = stock_records.quantity + EXCLUDED.quantity,
			item_name = EXCLUDED.item_name,
			unit      = EXCLUDED.unit,
			updated_at = now()
		RETURNING quantity`
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, query, rec.OwnerID, rec.ItemID, rec.ItemName, rec.Unit, delta).Scan(&qty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("apply stock delta: %w", err)
	}
	return qty, nil
}

// ListByOwner lista los registros de stock del owner, más recientes primero.
func (r *StockRecordRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT owner_id, item_id, item_name, unit, quantity, updated_at
		FROM stock_records WHERE owner_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.OwnerID, &s.ItemID, &s.ItemName, &s.Unit, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
