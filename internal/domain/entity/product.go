package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una licencia por puesto (seat) del catálogo.
// El precio es por puesto y los productos inactivos no se listan ni se venden.
type Product struct {
	ID          string // slug estable, p.ej. "endpoint-protection"
	Name        string
	Description string
	Price       decimal.Decimal
	Features    []string
	Active      bool
	CreatedAt   time.Time
}
