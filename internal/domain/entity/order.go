package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden. Avanzan en un solo sentido:
// pending -> processing -> completed | failed.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusFailed     = "failed"
)

// Estados del pago asociados a la orden.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// PaymentMethodCreditCard único método de pago soportado.
const PaymentMethodCreditCard = "credit_card"

// Order cabecera de una compra. Total = Subtotal + Tax, calculado en servidor.
type Order struct {
	ID               string // "<PREFIX>-<unix ms>-<6 base36>"
	CustomerID       string
	Email            string // email de contacto usado en la compra
	Status           string
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	PaymentMethod    string
	PaymentStatus    string
	PaymentReference string // id de transacción de la pasarela
	BillingAddress   BillingAddress
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusFailed},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusFailed},
}

// CanTransitionTo indica si el cambio de estado respeta el orden permitido.
func (o *Order) CanTransitionTo(next string) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}
