package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa el stock actual de un artículo para un owner (tenant).
// Existe a lo más un registro por (OwnerID, ItemID); se crea de forma perezosa en el
// primer ajuste y nunca se elimina, aunque el artículo del catálogo desaparezca.
// ItemName y Unit son copias desnormalizadas para visualización (last-writer-wins);
// la cantidad es la única columna autoritativa.
type StockRecord struct {
	OwnerID   string
	ItemID    string
	ItemName  string
	Unit      string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
