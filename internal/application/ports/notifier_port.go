package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LicenseKeyGroup claves emitidas para un producto de la orden.
type LicenseKeyGroup struct {
	ProductName string   `json:"productName"`
	Keys        []string `json:"keys"`
}

// VerificationMessage correo con el código OTP.
type VerificationMessage struct {
	To      string
	Code    string
	Expires time.Duration
}

// LicenseKeysMessage correo de entrega de claves tras un pago aprobado.
type LicenseKeysMessage struct {
	To           string
	CustomerName string
	OrderID      string
	Total        decimal.Decimal
	Groups       []LicenseKeyGroup
}

// InvoiceMessage correo con la factura adjunta.
type InvoiceMessage struct {
	To           string
	CustomerName string
	OrderID      string
	Total        decimal.Decimal
	Filename     string
	PDF          []byte
}

// Notifier puerto de salida de correo transaccional.
// Los fallos se devuelven envueltos en domain.ErrNotificationFailed.
type Notifier interface {
	SendVerificationCode(ctx context.Context, msg VerificationMessage) error
	SendLicenseKeys(ctx context.Context, msg LicenseKeysMessage) error
	SendInvoice(ctx context.Context, msg InvoiceMessage) error
}
