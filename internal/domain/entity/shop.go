package entity

import "time"

// Shop representa una tienda o sucursal física donde se mantiene stock (multi-tienda).
type Shop struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
