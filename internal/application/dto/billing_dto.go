package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest una línea de factura o compra.
type DocumentLineRequest struct {
	ItemID string          `json:"item_id"`
	Qty    decimal.Decimal `json:"qty"`
	Rate   decimal.Decimal `json:"rate"`
}

// SaveInvoiceRequest body para crear/actualizar una factura.
// Status "Draft" no toca inventario; "Saved" finaliza y descuenta stock.
type SaveInvoiceRequest struct {
	CustomerID string                `json:"customer_id"`
	InvoiceNo  string                `json:"invoice_no"`
	Date       string                `json:"date"` // YYYY-MM-DD
	Status     string                `json:"status"`
	Lines      []DocumentLineRequest `json:"lines"`
}

// DocumentLineResponse una línea en respuestas.
type DocumentLineResponse struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Unit     string          `json:"unit"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura con líneas.
type InvoiceResponse struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	InvoiceNo  string                 `json:"invoice_no"`
	Date       time.Time              `json:"date"`
	Status     string                 `json:"status"`
	Total      decimal.Decimal        `json:"total"`
	Lines      []DocumentLineResponse `json:"lines"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// CreateBillRequest body para registrar una compra. Las compras no tienen borrador:
// al crearse suman inventario y quedan inmutables.
type CreateBillRequest struct {
	VendorID string                `json:"vendor_id"`
	BillNo   string                `json:"bill_no"`
	Date     string                `json:"date"` // YYYY-MM-DD
	Lines    []DocumentLineRequest `json:"lines"`
}

// BillResponse compra con líneas.
type BillResponse struct {
	ID        string                 `json:"id"`
	VendorID  string                 `json:"vendor_id"`
	BillNo    string                 `json:"bill_no"`
	Date      time.Time              `json:"date"`
	Total     decimal.Decimal        `json:"total"`
	Lines     []DocumentLineResponse `json:"lines"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
