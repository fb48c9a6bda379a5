package entity

import "time"

// Vendor representa un proveedor del owner (compras).
type Vendor struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
