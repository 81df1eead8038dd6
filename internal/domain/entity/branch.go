package entity

import "time"

// Branch representa una ubicación física con stock propio (tienda, almacén o taller).
type Branch struct {
	ID        string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
