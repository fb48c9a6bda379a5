package entity

import "time"

// Customer representa un cliente del owner (ventas).
type Customer struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
