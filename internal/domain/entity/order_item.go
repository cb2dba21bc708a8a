package entity

import "github.com/shopspring/decimal"

// OrderItem línea de la orden. Price es el precio unitario capturado al comprar;
// Total se persiste junto a la línea (Price * Quantity).
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Total       decimal.Decimal
}
