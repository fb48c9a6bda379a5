package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill representa una compra a proveedor.
// A diferencia de las facturas, no tiene estado borrador: al crearse ya suma
// inventario y queda inmutable; corregirla implica eliminarla (lo que revierte
// el stock) y crearla de nuevo.
type Bill struct {
	ID        string
	OwnerID   string
	VendorID  string
	BillNo    string
	Date      time.Time
	Total     decimal.Decimal
	Lines     []BillLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BillLine representa una línea de la compra.
type BillLine struct {
	ID       string
	BillID   string
	ItemID   string
	ItemName string
	Unit     string
	Qty      decimal.Decimal
	Rate     decimal.Decimal
	Amount   decimal.Decimal
}
