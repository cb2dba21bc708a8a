package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// CardDetails datos de la tarjeta tal como los envía el comprador. No se persisten.
type CardDetails struct {
	Number     string
	Expiry     string // MM/YY
	CVV        string
	HolderName string
}

// PaymentRequest cobro de una orden.
type PaymentRequest struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Email    string
	Card     CardDetails
	Billing  entity.BillingAddress
}

// RefundRequest devolución total o parcial de una transacción previa.
type RefundRequest struct {
	TransactionID string
	OrderID       string
	Amount        decimal.Decimal
	Reason        string
}

// PaymentResult resultado normalizado de la pasarela. Un rechazo es Success=false
// con Error legible para el comprador; no es un error de Go.
type PaymentResult struct {
	Success       bool
	TransactionID string
	Reference     string // referencia del comercio (id de orden o transacción original)
	Error         string
}

// PaymentGateway puerto de salida hacia la pasarela de pagos.
// Process y Refund no deben devolver error por rechazos ni por fallos de red:
// ambos se traducen a PaymentResult con Success=false.
type PaymentGateway interface {
	Process(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
	Refund(ctx context.Context, req RefundRequest) (*PaymentResult, error)
}
