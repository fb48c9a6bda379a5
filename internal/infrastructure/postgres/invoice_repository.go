package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (pool o tx).
// Cabecera en invoices, líneas en invoice_lines (FK con ON DELETE CASCADE).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, owner_id, customer_id, invoice_no, date, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.OwnerID, invoice.CustomerID, invoice.InvoiceNo,
		invoice.Date, invoice.Status, invoice.Total, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return r.insertLines(ctx, invoice)
}

// GetByID obtiene la factura con sus líneas. Devuelve nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Invoice, error) {
	query := `
		SELECT id, owner_id, customer_id, invoice_no, date, status, total, created_at, updated_at
		FROM invoices WHERE owner_id = $1 AND id = $2`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, ownerID, id).Scan(
		&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.InvoiceNo,
		&inv.Date, &inv.Status, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	lines, err := r.getLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

// ListByOwner lista facturas del owner (solo cabeceras), más recientes primero.
func (r *InvoiceRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, owner_id, customer_id, invoice_no, date, status, total, created_at, updated_at
		FROM invoices WHERE owner_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.CustomerID, &inv.InvoiceNo,
			&inv.Date, &inv.Status, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Update reemplaza cabecera y líneas (delete + insert de líneas).
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer_id = $3, invoice_no = $4, date = $5, status = $6, total = $7, updated_at = $8
		WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		invoice.OwnerID, invoice.ID, invoice.CustomerID, invoice.InvoiceNo,
		invoice.Date, invoice.Status, invoice.Total, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoice.ID); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return r.insertLines(ctx, invoice)
}

// Delete elimina la factura; las líneas caen por cascade.
func (r *InvoiceRepo) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM invoices WHERE owner_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) insertLines(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, item_id, item_name, unit, qty, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range invoice.Lines {
		_, err := r.q.Exec(ctx, query, l.ID, invoice.ID, l.ItemID, l.ItemName, l.Unit, l.Qty, l.Rate, l.Amount)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) getLines(ctx context.Context, invoiceID string) ([]entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, item_id, item_name, unit, qty, rate, amount
		FROM invoice_lines WHERE invoice_id = $1
		ORDER BY item_name ASC`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ItemID, &l.ItemName, &l.Unit, &l.Qty, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
