package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones canónicas de ajuste de inventario.
const (
	ReasonSalesInvoice     = "Sales Invoice"
	ReasonPurchaseBill     = "Purchase Bill"
	ReasonManualAdjustment = "Manual Adjustment"
	ReasonInvoiceReversal  = "Invoice Deleted (Stock Reversal)"
	ReasonBillReversal     = "Bill Deleted (Stock Reversal)"
)

// InventoryLog representa un evento de cambio de stock, append-only.
// Los logs son inmutables: nunca se actualizan ni se borran. La suma de Change por
// (OwnerID, ItemID) en orden de creación, partiendo de cero, es igual a la cantidad
// actual del StockRecord correspondiente (el ledger es una vista materializada del log).
type InventoryLog struct {
	ID        string
	OwnerID   string
	ItemID    string
	ItemName  string
	Change    decimal.Decimal // positivo = entrada, negativo = salida
	Reason    string
	RefID     string // referencia opcional al documento origen (factura o compra)
	CreatedAt time.Time
}
