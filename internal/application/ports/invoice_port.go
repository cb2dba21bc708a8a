package ports

import (
	"context"
	"time"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// InvoiceDocument datos completos para renderizar una factura.
type InvoiceDocument struct {
	Order       *entity.Order
	Customer    *entity.Customer
	Items       []*entity.OrderItem
	LicenseKeys []LicenseKeyGroup
	IssuedAt    time.Time
}

// InvoiceRenderer genera el documento (PDF) de la factura.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// InvoiceArchive guarda copias de las facturas generadas (opcional).
type InvoiceArchive interface {
	Store(ctx context.Context, orderID string, pdf []byte) error
}
