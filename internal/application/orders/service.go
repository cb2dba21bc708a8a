// Package orders: consulta de órdenes y facturas.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

// MsgInvoiceSent respuesta de POST /api/orders/:id/email-invoice.
const MsgInvoiceSent = "Invoice sent successfully"

var (
	ErrOrderNotFound    = fmt.Errorf("order: %w", domain.ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer: %w", domain.ErrNotFound)
)

// Deps colaboradores del servicio.
type Deps struct {
	Orders    repository.OrderRepository
	Customers repository.CustomerRepository
	Keys      repository.LicenseKeyRepository
	Renderer  ports.InvoiceRenderer
	Archive   ports.InvoiceArchive // opcional
	Notifier  ports.Notifier
	Log       zerolog.Logger
}

// InvoiceFile factura renderizada.
type InvoiceFile struct {
	Filename string
	PDF      []byte
}

// Service casos de uso de órdenes.
type Service struct {
	deps      Deps
	storeName string
	now       func() time.Time
}

// NewService crea el servicio; storeName se usa en el nombre del archivo PDF.
func NewService(deps Deps, storeName string) *Service {
	if storeName == "" {
		storeName = "NK2IT"
	}
	return &Service{deps: deps, storeName: storeName, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetDetails orden con líneas, claves y cliente.
func (s *Service) GetDetails(ctx context.Context, id string) (*dto.OrderDetailResponse, error) {
	order, items, keys, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.deps.Customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}

	out := &dto.OrderDetailResponse{
		Order:       dto.NewOrderResponse(order),
		Items:       make([]dto.OrderItemResponse, 0, len(items)),
		LicenseKeys: make([]dto.LicenseKeyResponse, 0, len(keys)),
		Customer:    dto.NewCustomerResponse(customer),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.NewOrderItemResponse(it))
	}
	for _, k := range keys {
		out.LicenseKeys = append(out.LicenseKeys, dto.NewLicenseKeyResponse(k))
	}
	return out, nil
}

// Invoice renderiza la factura de la orden. Si hay archivo configurado se guarda
// una copia; un fallo al archivar solo se registra.
func (s *Service) Invoice(ctx context.Context, id string) (*InvoiceFile, error) {
	file, _, _, err := s.render(ctx, id)
	return file, err
}

// EmailInvoice renderiza la factura y la envía al email de la orden.
func (s *Service) EmailInvoice(ctx context.Context, id string) (*dto.MessageResponse, error) {
	file, order, customer, err := s.render(ctx, id)
	if err != nil {
		return nil, err
	}
	name := customer.FullName()
	if name == "" {
		name = order.BillingAddress.FullName()
	}
	err = s.deps.Notifier.SendInvoice(ctx, ports.InvoiceMessage{
		To:           order.Email,
		CustomerName: name,
		OrderID:      order.ID,
		Total:        order.Total,
		Filename:     file.Filename,
		PDF:          file.PDF,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: MsgInvoiceSent}, nil
}

func (s *Service) render(ctx context.Context, id string) (*InvoiceFile, *entity.Order, *entity.Customer, error) {
	order, items, keys, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	customer, err := s.deps.Customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, nil, nil, err
	}
	if customer == nil {
		return nil, nil, nil, ErrCustomerNotFound
	}

	pdf, err := s.deps.Renderer.RenderInvoice(ctx, ports.InvoiceDocument{
		Order:       order,
		Customer:    customer,
		Items:       items,
		LicenseKeys: GroupKeys(items, keys),
		IssuedAt:    s.now(),
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("renderizar factura: %w", err)
	}

	if s.deps.Archive != nil {
		if err := s.deps.Archive.Store(ctx, order.ID, pdf); err != nil {
			s.deps.Log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo archivar la factura")
		}
	}
	return &InvoiceFile{Filename: s.Filename(order.ID), PDF: pdf}, order, customer, nil
}

// Filename nombre del PDF: <STORE>-Invoice-<orderId>.pdf.
func (s *Service) Filename(orderID string) string {
	return s.storeName + "-Invoice-" + orderID + ".pdf"
}

func (s *Service) load(ctx context.Context, id string) (*entity.Order, []*entity.OrderItem, []*entity.LicenseKey, error) {
	order, err := s.deps.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	if order == nil {
		return nil, nil, nil, ErrOrderNotFound
	}
	items, err := s.deps.Orders.ListItems(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	keys, err := s.deps.Keys.ListByOrder(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return order, items, keys, nil
}

// GroupKeys agrupa las claves por línea de la orden, en el orden de las líneas.
// Las líneas sin claves (orden no pagada) se omiten.
func GroupKeys(items []*entity.OrderItem, keys []*entity.LicenseKey) []ports.LicenseKeyGroup {
	byItem := make(map[string][]string, len(items))
	for _, k := range keys {
		byItem[k.OrderItemID] = append(byItem[k.OrderItemID], k.Key)
	}
	groups := make([]ports.LicenseKeyGroup, 0, len(items))
	for _, it := range items {
		if ks := byItem[it.ID]; len(ks) > 0 {
			groups = append(groups, ports.LicenseKeyGroup{ProductName: it.ProductName, Keys: ks})
		}
	}
	return groups
}
