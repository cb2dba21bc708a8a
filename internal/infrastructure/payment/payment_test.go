package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

func paymentRequest(card string) ports.PaymentRequest {
	return ports.PaymentRequest{
		OrderID:  "NK2IT-1",
		Amount:   decimal.RequireFromString("98.99"),
		Currency: "AUD",
		Email:    "buyer@example.com",
		Card:     ports.CardDetails{Number: card, Expiry: "12/30", CVV: "123", HolderName: "Ada Lovelace"},
		Billing: entity.BillingAddress{
			FirstName: "Ada", LastName: "Lovelace", Street: "1 George St",
			City: "Sydney", State: "NSW", Postcode: "2000", Country: "Australia",
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulada
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulated_TarjetaDePrueba(t *testing.T) {
	g := NewSimulatedGateway(0, zerolog.Nop())
	g.now = func() time.Time { return time.UnixMilli(1700000000000) }

	for _, card := range []string{"4111 1111 1111 1111", "4111111111111111"} {
		res, err := g.Process(context.Background(), paymentRequest(card))
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Regexp(t, `^DEMO_1700000000000_[0-9A-Z]{9}$`, res.TransactionID)
		assert.Equal(t, "NK2IT-1", res.Reference)
	}
}

func TestSimulated_OtraTarjetaRechazada(t *testing.T) {
	res, err := NewSimulatedGateway(0, zerolog.Nop()).Process(context.Background(), paymentRequest("5555 5555 5555 4444"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgInvalidTestCard, res.Error)
}

func TestSimulated_TarjetaDePruebaConGuionesRechazada(t *testing.T) {
	g := NewSimulatedGateway(0, zerolog.Nop())
	for _, card := range []string{"4111-1111-1111-1111", "4111 1111 1111 1112", "41111111111111111"} {
		res, err := g.Process(context.Background(), paymentRequest(card))
		require.NoError(t, err)
		assert.False(t, res.Success, card)
		assert.Equal(t, MsgInvalidTestCard, res.Error)
	}
}

func TestSimulated_RespetaCancelacion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSimulatedGateway(time.Hour, zerolog.Nop()).Process(ctx, paymentRequest(TestCardNumber))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulated_Refund(t *testing.T) {
	g := NewSimulatedGateway(0, zerolog.Nop())
	g.now = func() time.Time { return time.UnixMilli(42) }
	res, err := g.Refund(context.Background(), ports.RefundRequest{TransactionID: "DEMO_1", Amount: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "REFUND_42", res.TransactionID)
}

// ──────────────────────────────────────────────────────────────────────────────
// BPOINT
// ──────────────────────────────────────────────────────────────────────────────

func TestBPoint_PagoAprobado(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "merchant", user)
		assert.Equal(t, "key", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"responseCode":"SUCCESS","transactionNumber":"TX-1","merchantReference":"NK2IT-1"}`))
	}))
	defer srv.Close()

	g := NewBPointGateway(srv.URL+"/", "merchant", "key", time.Second, zerolog.Nop())
	res, err := g.Process(context.Background(), paymentRequest("4111 1111 1111 1111"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "TX-1", res.TransactionID)

	assert.EqualValues(t, 9899, got["amount"])
	assert.Equal(t, "payment", got["type"])
	card := got["card"].(map[string]any)
	assert.Equal(t, "4111111111111111", card["cardNumber"])
	assert.Equal(t, "12", card["expiryDateMonth"])
	assert.Equal(t, "2030", card["expiryDateYear"])
	addr := got["customer"].(map[string]any)["address"].(map[string]any)
	assert.Equal(t, "AU", addr["countryCode"])
}

func TestBPoint_Rechazado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"responseCode":"DECLINED","responseText":"Insufficient funds"}`))
	}))
	defer srv.Close()

	res, err := NewBPointGateway(srv.URL, "m", "k", time.Second, zerolog.Nop()).Process(context.Background(), paymentRequest(TestCardNumber))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Insufficient funds", res.Error)
}

func TestBPoint_RechazoSinTexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responseCode":"ERROR"}`))
	}))
	defer srv.Close()

	res, err := NewBPointGateway(srv.URL, "m", "k", time.Second, zerolog.Nop()).Process(context.Background(), paymentRequest(TestCardNumber))
	require.NoError(t, err)
	assert.Equal(t, MsgProcessingFailed, res.Error)
}

func TestBPoint_ServicioNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	res, err := NewBPointGateway(srv.URL, "m", "k", time.Second, zerolog.Nop()).Process(context.Background(), paymentRequest(TestCardNumber))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgServiceUnavailable, res.Error)
}

func TestBPoint_Refund(t *testing.T) {
	var got bpointRefund
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"responseCode":"SUCCESS","transactionNumber":"RF-1"}`))
	}))
	defer srv.Close()

	res, err := NewBPointGateway(srv.URL, "m", "k", time.Second, zerolog.Nop()).Refund(context.Background(), ports.RefundRequest{
		TransactionID: "TX-1", Amount: decimal.RequireFromString("10.5"), Reason: "duplicate",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "RF-1", res.TransactionID)
	assert.Equal(t, bpointRefund{OriginalTxnNumber: "TX-1", Amount: 1050, Type: "refund", MerchantReference: "duplicate"}, got)
}

func TestSplitExpiryYCentavos(t *testing.T) {
	m, y := splitExpiry(" 07 / 29 ")
	assert.Equal(t, "07", m)
	assert.Equal(t, "2029", y)
	assert.Equal(t, int64(8999), ToCents(decimal.RequireFromString("89.99")))
	assert.True(t, strings.HasPrefix(DefaultBPointURL, "https://"))
}
