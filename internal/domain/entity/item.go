package entity

import "time"

// Item representa un artículo del catálogo de un owner.
// El stock no vive aquí: se materializa en StockRecord vía ajustes.
type Item struct {
	ID        string
	OwnerID   string
	Name      string
	Unit      string // "pcs", "kg", etc.
	CreatedAt time.Time
	UpdatedAt time.Time
}
