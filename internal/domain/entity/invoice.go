package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura.
const (
	InvoiceStatusDraft = "Draft" // editable, sin efecto sobre inventario
	InvoiceStatusSaved = "Saved" // finalizada: descontó stock y quedó inmutable
)

// Invoice representa una factura de venta con sus líneas.
// Un Draft puede editarse o eliminarse libremente; una factura Saved ya descontó
// inventario y solo admite eliminación, que restaura el stock línea por línea.
type Invoice struct {
	ID         string
	OwnerID    string
	CustomerID string
	InvoiceNo  string
	Date       time.Time
	Status     string
	Total      decimal.Decimal
	Lines      []InvoiceLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceLine representa una línea de la factura. ItemName y Unit son copias del
// catálogo al momento de guardar: la reversa usa estas copias, no el catálogo actual.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ItemID    string
	ItemName  string
	Unit      string
	Qty       decimal.Decimal
	Rate      decimal.Decimal
	Amount    decimal.Decimal
}
