package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository sobre PostgreSQL (pool o tx).
// Cabecera en bills, líneas en bill_lines (FK con ON DELETE CASCADE).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	query := `
		INSERT INTO bills (id, owner_id, vendor_id, bill_no, date, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.OwnerID, bill.VendorID, bill.BillNo,
		bill.Date, bill.Total, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	lineQuery := `
		INSERT INTO bill_lines (id, bill_id, item_id, item_name, unit, qty, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range bill.Lines {
		_, err := r.q.Exec(ctx, lineQuery, l.ID, bill.ID, l.ItemID, l.ItemName, l.Unit, l.Qty, l.Rate, l.Amount)
		if err != nil {
			return fmt.Errorf("insert bill line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la compra con sus líneas. Devuelve nil si no existe.
func (r *BillRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Bill, error) {
	query := `
		SELECT id, owner_id, vendor_id, bill_no, date, total, created_at, updated_at
		FROM bills WHERE owner_id = $1 AND id = $2`
	var b entity.Bill
	err := r.q.QueryRow(ctx, query, ownerID, id).Scan(
		&b.ID, &b.OwnerID, &b.VendorID, &b.BillNo,
		&b.Date, &b.Total, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	lineQuery := `
		SELECT id, bill_id, item_id, item_name, unit, qty, rate, amount
		FROM bill_lines WHERE bill_id = $1
		ORDER BY item_name ASC`
	rows, err := r.q.Query(ctx, lineQuery, b.ID)
	if err != nil {
		return nil, fmt.Errorf("get bill lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.BillLine
		if err := rows.Scan(&l.ID, &l.BillID, &l.ItemID, &l.ItemName, &l.Unit, &l.Qty, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan bill line: %w", err)
		}
		b.Lines = append(b.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByOwner lista compras del owner (solo cabeceras), más recientes primero.
func (r *BillRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT id, owner_id, vendor_id, bill_no, date, total, created_at, updated_at
		FROM bills WHERE owner_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.VendorID, &b.BillNo,
			&b.Date, &b.Total, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina la compra; las líneas caen por cascade.
func (r *BillRepo) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM bills WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}
