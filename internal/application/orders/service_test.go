package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licenseshop-api/internal/application/orders"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeRenderer struct{ last ports.InvoiceDocument }

func (r *fakeRenderer) RenderInvoice(_ context.Context, doc ports.InvoiceDocument) ([]byte, error) {
	r.last = doc
	return []byte("%PDF-1.3 fake"), nil
}

type fakeArchive struct {
	stored map[string][]byte
	err    error
}

func (a *fakeArchive) Store(_ context.Context, orderID string, pdf []byte) error {
	if a.err != nil {
		return a.err
	}
	a.stored[orderID] = pdf
	return nil
}

type fakeNotifier struct {
	invoices []ports.InvoiceMessage
	err      error
}

func (n *fakeNotifier) SendVerificationCode(context.Context, ports.VerificationMessage) error {
	return nil
}
func (n *fakeNotifier) SendLicenseKeys(context.Context, ports.LicenseKeysMessage) error { return nil }
func (n *fakeNotifier) SendInvoice(_ context.Context, msg ports.InvoiceMessage) error {
	if n.err != nil {
		return n.err
	}
	n.invoices = append(n.invoices, msg)
	return nil
}

type fixture struct {
	svc      *orders.Service
	store    *memory.Store
	renderer *fakeRenderer
	archive  *fakeArchive
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.NewStore(),
		renderer: &fakeRenderer{},
		archive:  &fakeArchive{stored: map[string][]byte{}},
		notifier: &fakeNotifier{},
	}
	f.svc = orders.NewService(orders.Deps{
		Orders:    f.store.Orders(),
		Customers: f.store.Customers(),
		Keys:      f.store.LicenseKeys(),
		Renderer:  f.renderer,
		Archive:   f.archive,
		Notifier:  f.notifier,
		Log:       zerolog.Nop(),
	}, "NK2IT")
	seed(t, f.store)
	return f
}

func seed(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{
		ID: "cust-1", Email: "buyer@example.com", FirstName: "Ada", LastName: "Lovelace", CreatedAt: now,
	}))
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{
		ID: "NK2IT-1", CustomerID: "cust-1", Email: "buyer@example.com",
		Status: entity.OrderStatusCompleted, PaymentStatus: entity.PaymentStatusCompleted,
		Subtotal: decimal.RequireFromString("239.98"), Tax: decimal.RequireFromString("24.00"),
		Total: decimal.RequireFromString("263.98"), CreatedAt: now,
	}))
	require.NoError(t, s.Orders().CreateItem(ctx, &entity.OrderItem{
		ID: "item-1", OrderID: "NK2IT-1", ProductID: "endpoint-protection",
		ProductName: "Symantec Endpoint Protection Enterprise", Quantity: 1, Price: decimal.RequireFromString("89.99"),
		Total: decimal.RequireFromString("89.99"),
	}))
	require.NoError(t, s.Orders().CreateItem(ctx, &entity.OrderItem{
		ID: "item-2", OrderID: "NK2IT-1", ProductID: "endpoint-complete",
		ProductName: "Symantec Endpoint Security Complete", Quantity: 1, Price: decimal.RequireFromString("149.99"),
		Total: decimal.RequireFromString("149.99"),
	}))
	for _, k := range []*entity.LicenseKey{
		{OrderID: "NK2IT-1", OrderItemID: "item-2", ProductID: "endpoint-complete", Key: "SESCO-AAAAA-BBBBB-CCCCC-DDDD", Status: entity.LicenseStatusActive},
		{OrderID: "NK2IT-1", OrderItemID: "item-1", ProductID: "endpoint-protection", Key: "SEPEP-AAAAA-BBBBB-CCCCC-DDDD", Status: entity.LicenseStatusActive},
	} {
		require.NoError(t, s.LicenseKeys().Create(ctx, k))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDetails(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.GetDetails(context.Background(), "NK2IT-1")
	require.NoError(t, err)
	assert.Equal(t, "263.98", out.Order.Total.String())
	assert.Equal(t, "24.00", out.Order.GST.String())
	assert.Len(t, out.Items, 2)
	assert.Len(t, out.LicenseKeys, 2)
	require.NotNil(t, out.Customer)
	assert.Equal(t, "Ada", out.Customer.FirstName)
}

func TestGetDetails_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetDetails(context.Background(), "nope")
	assert.ErrorIs(t, err, orders.ErrOrderNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_AgrupaClavesPorLinea(t *testing.T) {
	f := newFixture(t)

	file, err := f.svc.Invoice(context.Background(), "NK2IT-1")
	require.NoError(t, err)
	assert.Equal(t, "NK2IT-Invoice-NK2IT-1.pdf", file.Filename)
	assert.Equal(t, []byte("%PDF-1.3 fake"), file.PDF)

	groups := f.renderer.last.LicenseKeys
	require.Len(t, groups, 2)
	assert.Equal(t, "Symantec Endpoint Protection Enterprise", groups[0].ProductName)
	assert.Equal(t, []string{"SEPEP-AAAAA-BBBBB-CCCCC-DDDD"}, groups[0].Keys)
	assert.Equal(t, "Symantec Endpoint Security Complete", groups[1].ProductName)

	assert.Contains(t, f.archive.stored, "NK2IT-1")
}

func TestInvoice_FalloDeArchivoNoAfecta(t *testing.T) {
	f := newFixture(t)
	f.archive.err = errors.New("bucket missing")

	file, err := f.svc.Invoice(context.Background(), "NK2IT-1")
	require.NoError(t, err)
	assert.NotEmpty(t, file.PDF)
}

func TestInvoice_SinCliente(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Orders().Create(context.Background(), &entity.Order{ID: "NK2IT-2", CustomerID: "ghost"}))

	_, err := f.svc.Invoice(context.Background(), "NK2IT-2")
	assert.ErrorIs(t, err, orders.ErrCustomerNotFound)
}

func TestEmailInvoice(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.EmailInvoice(context.Background(), "NK2IT-1")
	require.NoError(t, err)
	assert.Equal(t, orders.MsgInvoiceSent, resp.Message)

	require.Len(t, f.notifier.invoices, 1)
	msg := f.notifier.invoices[0]
	assert.Equal(t, "buyer@example.com", msg.To)
	assert.Equal(t, "Ada Lovelace", msg.CustomerName)
	assert.Equal(t, "NK2IT-Invoice-NK2IT-1.pdf", msg.Filename)
}

func TestEmailInvoice_FalloDeEnvio(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = domain.ErrNotificationFailed

	_, err := f.svc.EmailInvoice(context.Background(), "NK2IT-1")
	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
}

func TestGroupKeys_OmiteLineasSinClaves(t *testing.T) {
	items := []*entity.OrderItem{{ID: "a", ProductName: "A"}, {ID: "b", ProductName: "B"}}
	keys := []*entity.LicenseKey{{OrderItemID: "b", Key: "K1"}, {OrderItemID: "b", Key: "K2"}}

	groups := orders.GroupKeys(items, keys)
	require.Len(t, groups, 1)
	assert.Equal(t, "B", groups[0].ProductName)
	assert.Equal(t, []string{"K1", "K2"}, groups[0].Keys)
}
