package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product vista de lectura del catálogo (administrado por otro sistema).
// MinThreshold es el umbral mínimo por producto que consume el evaluador de alertas.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string
	Name         string
	MinThreshold int64
	Cost         decimal.Decimal
	Price        decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
