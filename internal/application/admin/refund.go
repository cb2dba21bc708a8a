// Package admin: operaciones del operador sobre órdenes ya pagadas.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

const (
	MsgRefunded           = "Refund processed successfully"
	MsgRefundFailed       = "Refund processing failed"
	MsgPaymentUnavailable = "Payment service unavailable. Please try again later."
)

// RefundUseCase devoluciones contra la pasarela.
type RefundUseCase struct {
	orders   repository.OrderRepository
	payments ports.PaymentGateway
	metrics  ports.Metrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewRefundUseCase construye el caso de uso.
func NewRefundUseCase(orders repository.OrderRepository, payments ports.PaymentGateway, metrics ports.Metrics, log zerolog.Logger) *RefundUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RefundUseCase{orders: orders, payments: payments, metrics: metrics, log: log, now: time.Now}
}

// Refund devuelve el total (o el importe indicado) de una orden completada.
// Las claves emitidas no se modifican. Un rechazo de la pasarela no es error.
func (uc *RefundUseCase) Refund(ctx context.Context, orderID string, in dto.RefundRequest) (*dto.RefundResponse, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order: %w", domain.ErrNotFound)
	}
	if order.Status != entity.OrderStatusCompleted || order.PaymentStatus != entity.PaymentStatusCompleted {
		return nil, fmt.Errorf("la orden %s no admite devolución (%s/%s): %w", order.ID, order.Status, order.PaymentStatus, domain.ErrConflict)
	}

	amount := order.Total
	if in.Amount != nil {
		amount = in.Amount.Decimal().Round(2)
	}
	if !amount.IsPositive() || amount.GreaterThan(order.Total) {
		return nil, fmt.Errorf("importe de devolución %s: %w", amount.StringFixed(2), domain.ErrInvalidInput)
	}

	res, err := uc.payments.Refund(ctx, ports.RefundRequest{
		TransactionID: order.PaymentReference,
		OrderID:       order.ID,
		Amount:        amount,
		Reason:        strings.TrimSpace(in.Reason),
	})
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", order.ID).Msg("pasarela de pago: devolución")
		res = &ports.PaymentResult{Success: false, Error: MsgPaymentUnavailable}
		uc.metrics.ObservePayment("refund", ports.ResultFailed)
	} else if res.Success {
		uc.metrics.ObservePayment("refund", ports.ResultSuccess)
	} else {
		uc.metrics.ObservePayment("refund", ports.ResultDeclined)
	}

	out := &dto.RefundResponse{OrderID: order.ID, Amount: dto.NewMoney(amount)}
	if !res.Success {
		out.Message = res.Error
		if out.Message == "" {
			out.Message = MsgRefundFailed
		}
		return out, nil
	}

	order.PaymentStatus = entity.PaymentStatusRefunded
	order.UpdatedAt = uc.now()
	if err := uc.orders.UpdatePayment(ctx, order); err != nil {
		uc.log.Error().Err(err).Str("order_id", order.ID).Str("transaction_id", res.TransactionID).
			Msg("devolución aprobada pero no se pudo actualizar la orden")
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("transaction_id", res.TransactionID).
		Str("amount", amount.StringFixed(2)).Msg("devolución procesada")

	out.Success = true
	out.TransactionID = res.TransactionID
	out.Message = MsgRefunded
	return out, nil
}
