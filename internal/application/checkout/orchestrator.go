// Package checkout: orquesta la compra completa.
//
//	productos -> totales -> cliente -> orden+líneas -> pago -> claves -> correo
//
// La orden y sus líneas se guardan antes de cobrar y quedan como registro
// aunque el pago sea rechazado. No hay compensaciones: un fallo posterior al
// cobro se registra en el log con el id de transacción.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/catalog"
	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/application/verification"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/license"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
	"github.com/jhoicas/licenseshop-api/pkg/jwt"
)

// Mensajes de pago devueltos al comprador.
const (
	MsgPaymentFailed      = "Payment processing failed"
	MsgPaymentUnavailable = "Payment service unavailable. Please try again later."
)

// Config parámetros del checkout.
type Config struct {
	OrderPrefix          string
	Currency             string
	RequireVerifiedEmail bool
	// MaxKeyAttempts reintentos por clave ante colisión con una existente.
	MaxKeyAttempts int
}

// Deps colaboradores del orquestador.
type Deps struct {
	Products  repository.ProductRepository
	Customers repository.CustomerRepository
	Tx        TxRunner
	Payments  ports.PaymentGateway
	Keys      *license.Generator
	Notifier  ports.Notifier
	Tokens    TokenParser // obligatorio si RequireVerifiedEmail
	Metrics   ports.Metrics
	Log       zerolog.Logger
}

// Orchestrator caso de uso de checkout.
type Orchestrator struct {
	deps Deps
	cfg  Config
	now  func() time.Time
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(deps Deps, cfg Config) *Orchestrator {
	if cfg.OrderPrefix == "" {
		cfg.OrderPrefix = "NK2IT"
	}
	if cfg.Currency == "" {
		cfg.Currency = "AUD"
	}
	if cfg.MaxKeyAttempts <= 0 {
		cfg.MaxKeyAttempts = 5
	}
	if deps.Metrics == nil {
		deps.Metrics = ports.NopMetrics{}
	}
	if deps.Keys == nil {
		deps.Keys = license.NewGenerator(nil)
	}
	return &Orchestrator{deps: deps, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Checkout ejecuta la compra. Un pago rechazado no es error: devuelve
// Success=false con el id de la orden. Los errores son de validación
// (ErrInvalidInput, ErrUnknownProduct, ErrEmailNotVerified) o de infraestructura.
func (o *Orchestrator) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	resp, err := o.checkout(ctx, in)
	switch {
	case err != nil && (errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrUnknownProduct) || errors.Is(err, domain.ErrEmailNotVerified)):
		o.deps.Metrics.ObserveCheckout(ports.ResultInvalid)
	case err != nil:
		o.deps.Metrics.ObserveCheckout(ports.ResultFailed)
	case resp.Success:
		o.deps.Metrics.ObserveCheckout(ports.ResultSuccess)
	default:
		o.deps.Metrics.ObserveCheckout(ports.ResultDeclined)
	}
	return resp, err
}

func (o *Orchestrator) checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	email := verification.NormalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("email requerido: %w", domain.ErrInvalidInput)
	}
	if o.cfg.RequireVerifiedEmail {
		if err := o.checkVerified(email, in.VerificationToken); err != nil {
			return nil, err
		}
	}

	// 1-2. Productos y totales con precios del catálogo
	c, err := catalog.PriceItems(ctx, o.deps.Products, in.Items)
	if err != nil {
		return nil, err
	}

	// 3. Cliente
	customer, err := o.resolveCustomer(ctx, email, in.Billing)
	if err != nil {
		return nil, err
	}

	// 4-5. Orden y líneas
	now := o.now()
	orderID, err := NewOrderID(o.cfg.OrderPrefix, now)
	if err != nil {
		return nil, err
	}
	order := &entity.Order{
		ID:             orderID,
		CustomerID:     customer.ID,
		Email:          email,
		Status:         entity.OrderStatusProcessing,
		Subtotal:       c.Subtotal(),
		Tax:            c.Tax(),
		Total:          c.Total(),
		PaymentMethod:  entity.PaymentMethodCreditCard,
		PaymentStatus:  entity.PaymentStatusPending,
		BillingAddress: billingAddress(in.Billing),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := make([]*entity.OrderItem, 0, len(c.Items()))
	for _, it := range c.Items() {
		items = append(items, &entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   it.ProductID,
			ProductName: it.Name,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.LineTotal(),
		})
	}
	err = o.deps.Tx.RunCheckout(ctx, func(orderRepo repository.OrderRepository, _ repository.LicenseKeyRepository) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("crear orden: %w", err)
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("crear línea: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log := o.deps.Log.With().Str("order_id", order.ID).Logger()
	log.Info().Str("total", order.Total.StringFixed(2)).Int("seats", c.TotalItems()).Msg("orden creada")

	// 6. Pago
	result := o.charge(ctx, order, email, in.Payment)
	if !result.Success {
		return o.decline(ctx, log, order, result.Error)
	}

	// 7. Claves y cierre de la orden
	groups, err := o.fulfil(ctx, order, items, result.TransactionID)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", result.TransactionID).
			Msg("pago aprobado pero no se pudo completar la orden")
		return nil, err
	}
	log.Info().Str("transaction_id", result.TransactionID).Msg("orden completada")

	// El correo no afecta el resultado: el comprador ya recibe las claves en la respuesta.
	if err := o.deps.Notifier.SendLicenseKeys(ctx, ports.LicenseKeysMessage{
		To:           email,
		CustomerName: order.BillingAddress.FullName(),
		OrderID:      order.ID,
		Total:        order.Total,
		Groups:       groups,
	}); err != nil {
		log.Warn().Err(err).Msg("no se pudo enviar el correo de claves")
	}

	total := dto.NewMoney(order.Total)
	return &dto.CheckoutResponse{
		Success:       true,
		OrderID:       order.ID,
		TransactionID: result.TransactionID,
		LicenseKeys:   groups,
		Total:         &total,
	}, nil
}

func (o *Orchestrator) checkVerified(email, token string) error {
	if o.deps.Tokens == nil || strings.TrimSpace(token) == "" {
		return domain.ErrEmailNotVerified
	}
	claims, err := o.deps.Tokens.Parse(token, jwt.PurposeVerification)
	if err != nil || claims.Email != email {
		return domain.ErrEmailNotVerified
	}
	return nil
}

// resolveCustomer reutiliza el cliente del email o lo crea con los datos de facturación.
func (o *Orchestrator) resolveCustomer(ctx context.Context, email string, b dto.BillingRequest) (*entity.Customer, error) {
	existing, err := o.deps.Customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	now := o.now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Email:     email,
		FirstName: strings.TrimSpace(b.FirstName),
		LastName:  strings.TrimSpace(b.LastName),
		Company:   strings.TrimSpace(b.Company),
		Phone:     strings.TrimSpace(b.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.deps.Customers.Create(ctx, c); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("crear cliente: %w", err)
		}
		// otra petición lo creó entre la lectura y la escritura
		existing, err = o.deps.Customers.GetByEmail(ctx, email)
		if err != nil || existing == nil {
			return nil, fmt.Errorf("releer cliente: %w", err)
		}
		return existing, nil
	}
	return c, nil
}

func (o *Orchestrator) charge(ctx context.Context, order *entity.Order, email string, p dto.PaymentRequest) *ports.PaymentResult {
	res, err := o.deps.Payments.Process(ctx, ports.PaymentRequest{
		OrderID:  order.ID,
		Amount:   order.Total,
		Currency: o.cfg.Currency,
		Email:    email,
		Card: ports.CardDetails{
			Number:     p.CardNumber,
			Expiry:     p.ExpiryDate,
			CVV:        p.CVV,
			HolderName: p.CardholderName,
		},
		Billing: order.BillingAddress,
	})
	switch {
	case err != nil:
		o.deps.Log.Error().Err(err).Str("order_id", order.ID).Msg("pasarela de pago")
		res = &ports.PaymentResult{Success: false, Error: MsgPaymentUnavailable}
		o.deps.Metrics.ObservePayment("process", ports.ResultFailed)
	case res.Success:
		o.deps.Metrics.ObservePayment("process", ports.ResultSuccess)
	default:
		o.deps.Metrics.ObservePayment("process", ports.ResultDeclined)
	}
	return res
}

func (o *Orchestrator) decline(ctx context.Context, log zerolog.Logger, order *entity.Order, reason string) (*dto.CheckoutResponse, error) {
	if reason == "" {
		reason = MsgPaymentFailed
	}
	if !order.CanTransitionTo(entity.OrderStatusFailed) {
		return nil, fmt.Errorf("orden %s en estado %s: %w", order.ID, order.Status, domain.ErrConflict)
	}
	order.Status = entity.OrderStatusFailed
	order.PaymentStatus = entity.PaymentStatusFailed
	order.UpdatedAt = o.now()
	err := o.deps.Tx.RunCheckout(ctx, func(orderRepo repository.OrderRepository, _ repository.LicenseKeyRepository) error {
		return orderRepo.UpdatePayment(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("marcar orden fallida: %w", err)
	}
	log.Info().Str("reason", reason).Msg("pago rechazado")
	return &dto.CheckoutResponse{Success: false, OrderID: order.ID, Message: reason}, nil
}

// fulfil marca la orden como completada y emite una clave por puesto, todo en una transacción.
func (o *Orchestrator) fulfil(ctx context.Context, order *entity.Order, items []*entity.OrderItem, transactionID string) ([]ports.LicenseKeyGroup, error) {
	if !order.CanTransitionTo(entity.OrderStatusCompleted) {
		return nil, fmt.Errorf("orden %s en estado %s: %w", order.ID, order.Status, domain.ErrConflict)
	}
	var groups []ports.LicenseKeyGroup
	now := o.now()
	order.Status = entity.OrderStatusCompleted
	order.PaymentStatus = entity.PaymentStatusCompleted
	order.PaymentReference = transactionID
	order.UpdatedAt = now

	err := o.deps.Tx.RunCheckout(ctx, func(orderRepo repository.OrderRepository, keyRepo repository.LicenseKeyRepository) error {
		groups = groups[:0]
		if err := orderRepo.UpdatePayment(ctx, order); err != nil {
			return fmt.Errorf("completar orden: %w", err)
		}
		for _, item := range items {
			keys, err := o.issueKeys(ctx, keyRepo, order.ID, item, now)
			if err != nil {
				return err
			}
			groups = append(groups, ports.LicenseKeyGroup{ProductName: item.ProductName, Keys: keys})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (o *Orchestrator) issueKeys(ctx context.Context, keyRepo repository.LicenseKeyRepository, orderID string, item *entity.OrderItem, now time.Time) ([]string, error) {
	keys := make([]string, 0, item.Quantity)
	for i := 0; i < item.Quantity; i++ {
		var stored bool
		for attempt := 0; attempt < o.cfg.MaxKeyAttempts && !stored; attempt++ {
			generated, err := o.deps.Keys.Generate(item.ProductID, 1)
			if err != nil {
				return nil, err
			}
			lk := &entity.LicenseKey{
				ID:          uuid.New().String(),
				OrderID:     orderID,
				OrderItemID: item.ID,
				ProductID:   item.ProductID,
				Key:         generated[0],
				Status:      entity.LicenseStatusActive,
				CreatedAt:   now,
			}
			err = keyRepo.Create(ctx, lk)
			switch {
			case err == nil:
				keys = append(keys, lk.Key)
				stored = true
			case errors.Is(err, domain.ErrDuplicate):
				continue
			default:
				return nil, fmt.Errorf("guardar clave: %w", err)
			}
		}
		if !stored {
			return nil, fmt.Errorf("no se pudo generar una clave única para %s: %w", item.ProductID, domain.ErrConflict)
		}
	}
	return keys, nil
}

func billingAddress(b dto.BillingRequest) entity.BillingAddress {
	return entity.BillingAddress{
		FirstName: strings.TrimSpace(b.FirstName),
		LastName:  strings.TrimSpace(b.LastName),
		Company:   strings.TrimSpace(b.Company),
		Street:    strings.TrimSpace(b.Street),
		City:      strings.TrimSpace(b.City),
		State:     strings.TrimSpace(b.State),
		Postcode:  strings.TrimSpace(b.Postcode),
		Country:   entity.DefaultCountry,
		Phone:     strings.TrimSpace(b.Phone),
	}
}
