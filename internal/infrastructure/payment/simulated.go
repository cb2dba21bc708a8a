// Package payment: adaptadores de la pasarela de pagos.
package payment

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
)

var _ ports.PaymentGateway = (*SimulatedGateway)(nil)

// TestCardNumber única tarjeta aceptada por la pasarela simulada.
const TestCardNumber = "4111111111111111"

// Mensajes devueltos al comprador.
const (
	MsgInvalidTestCard    = "Invalid card number. Use 4111 1111 1111 1111 for testing."
	MsgProcessingFailed   = "Payment processing failed"
	MsgServiceUnavailable = "Payment service unavailable. Please try again later."
	MsgRefundFailed       = "Refund processing failed"
	MsgRefundUnavailable  = "Refund service unavailable. Please try again later."
)

const (
	base36                = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	simulatedSuffixLength = 9
)

// SimulatedGateway pasarela de demostración: acepta solo la tarjeta de prueba.
type SimulatedGateway struct {
	delay time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

// NewSimulatedGateway crea la pasarela simulada con la demora de procesamiento indicada.
func NewSimulatedGateway(delay time.Duration, log zerolog.Logger) *SimulatedGateway {
	return &SimulatedGateway{delay: delay, log: log, now: time.Now}
}

// Process espera la demora y aprueba si la tarjeta (sin espacios) es la de prueba.
func (g *SimulatedGateway) Process(ctx context.Context, req ports.PaymentRequest) (*ports.PaymentResult, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	if stripSpaces(req.Card.Number) != TestCardNumber {
		return &ports.PaymentResult{Success: false, Error: MsgInvalidTestCard}, nil
	}
	suffix, err := randomBase36(simulatedSuffixLength)
	if err != nil {
		return nil, err
	}
	txn := fmt.Sprintf("DEMO_%d_%s", g.now().UnixMilli(), suffix)
	g.log.Info().
		Str("order_id", req.OrderID).
		Str("transaction_id", txn).
		Str("amount", req.Amount.StringFixed(2)).
		Str("currency", req.Currency).
		Msg("pago simulado aprobado")
	return &ports.PaymentResult{Success: true, TransactionID: txn, Reference: req.OrderID}, nil
}

// Refund siempre aprueba.
func (g *SimulatedGateway) Refund(_ context.Context, req ports.RefundRequest) (*ports.PaymentResult, error) {
	txn := fmt.Sprintf("REFUND_%d", g.now().UnixMilli())
	g.log.Info().
		Str("order_id", req.OrderID).
		Str("original_transaction_id", req.TransactionID).
		Str("amount", req.Amount.StringFixed(2)).
		Msg("devolución simulada")
	return &ports.PaymentResult{Success: true, TransactionID: txn, Reference: req.TransactionID}, nil
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	t := time.NewTimer(g.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CleanCardNumber elimina espacios y guiones (payload BPOINT).
func CleanCardNumber(n string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(n)
}

// stripSpaces quita solo los espacios: la tarjeta de prueba se acepta con o sin ellos.
func stripSpaces(n string) string {
	return strings.Join(strings.Fields(n), "")
}

func randomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36)))
	b := make([]byte, n)
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("payment: generar aleatorio: %w", err)
		}
		b[i] = base36[v.Int64()]
	}
	return string(b), nil
}
