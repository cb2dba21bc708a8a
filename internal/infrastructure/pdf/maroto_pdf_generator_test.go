package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

func testStore() StoreInfo {
	return StoreInfo{
		Name:         "NK2IT",
		LegalName:    "NK2IT PTY LTD",
		AddressLines: []string{"222, 20B Lexington Drive", "Norwest Business Park", "Baulkham Hills NSW 2153"},
		SupportEmail: "support@nk2it.com.au",
		Phone:        "1300 NK2 IT",
		Website:      "nk2it.com.au",
	}
}

func testDocument(seats int) ports.InvoiceDocument {
	keys := make([]string, seats)
	for i := range keys {
		keys[i] = "SEPEP-AAAAA-BBBBB-CCCCC-DDDD"
	}
	price := decimal.RequireFromString("89.99")
	sub := price.Mul(decimal.NewFromInt(int64(seats)))
	tax := sub.Mul(decimal.RequireFromString("0.10")).Round(2)
	return ports.InvoiceDocument{
		Order: &entity.Order{
			ID: "NK2IT-1714550400000-ABC123", Email: "buyer@example.com",
			Subtotal: sub, Tax: tax, Total: sub.Add(tax),
			BillingAddress: entity.BillingAddress{
				FirstName: "Ada", LastName: "Lovelace", Company: "Analytical Engines",
				Street: "1 George St", City: "Sydney", State: "NSW", Postcode: "2000", Country: "Australia",
			},
		},
		Customer: &entity.Customer{FirstName: "Ada", LastName: "Lovelace"},
		Items: []*entity.OrderItem{{
			ID: "item-1", ProductID: "endpoint-protection",
			ProductName: "Symantec Endpoint Protection Enterprise", Quantity: seats, Price: price, Total: sub,
		}},
		LicenseKeys: []ports.LicenseKeyGroup{{ProductName: "Symantec Endpoint Protection Enterprise", Keys: keys}},
		IssuedAt:    time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestRenderInvoice_GeneraPDF(t *testing.T) {
	out, err := NewInvoiceRenderer(testStore()).RenderInvoice(context.Background(), testDocument(1))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestRenderInvoice_MuchasClavesPagina(t *testing.T) {
	one, err := NewInvoiceRenderer(testStore()).RenderInvoice(context.Background(), testDocument(1))
	require.NoError(t, err)
	many, err := NewInvoiceRenderer(testStore()).RenderInvoice(context.Background(), testDocument(120))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(many, []byte("%PDF")))
	assert.Greater(t, len(many), len(one))
}

func TestRenderInvoice_SinOrden(t *testing.T) {
	_, err := NewInvoiceRenderer(testStore()).RenderInvoice(context.Background(), ports.InvoiceDocument{})
	assert.Error(t, err)
}
