package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/pkg/money"
)

var _ ports.Notifier = (*Notifier)(nil)

// Tipos de correo (etiqueta de métricas).
const (
	KindVerification = "verification"
	KindLicenseKeys  = "license_keys"
	KindInvoice      = "invoice"
)

// Notifier implementa ports.Notifier con plantillas HTML embebidas.
type Notifier struct {
	sender   Sender
	tpl      *renderer
	store    StoreInfo
	currency string
	metrics  ports.Metrics
	log      zerolog.Logger
}

// NewNotifier parsea las plantillas y construye el notificador.
func NewNotifier(sender Sender, store StoreInfo, currency string, metrics ports.Metrics, log zerolog.Logger) (*Notifier, error) {
	tpl, err := newRenderer()
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if store.Name == "" {
		store.Name = "NK2IT"
	}
	return &Notifier{sender: sender, tpl: tpl, store: store, currency: currency, metrics: metrics, log: log}, nil
}

// SendVerificationCode envía el código OTP.
func (n *Notifier) SendVerificationCode(ctx context.Context, msg ports.VerificationMessage) error {
	minutes := int(msg.Expires.Minutes())
	if minutes <= 0 {
		minutes = 10
	}
	subject := n.store.Name + " - Email Verification Code"
	return n.deliver(ctx, KindVerification, tplVerification, msg.To, templateData{
		Subject:       subject,
		Code:          msg.Code,
		ExpiryMinutes: minutes,
	}, nil)
}

// SendLicenseKeys envía las claves agrupadas por producto.
func (n *Notifier) SendLicenseKeys(ctx context.Context, msg ports.LicenseKeysMessage) error {
	subject := fmt.Sprintf("%s - Your Symantec License Keys (Order #%s)", n.store.Name, msg.OrderID)
	return n.deliver(ctx, KindLicenseKeys, tplLicenseKeys, msg.To, templateData{
		Subject:      subject,
		CustomerName: msg.CustomerName,
		OrderID:      msg.OrderID,
		Total:        money.FormatWithCurrency(msg.Total, n.currency),
		Groups:       msg.Groups,
	}, nil)
}

// SendInvoice envía la factura como adjunto PDF.
func (n *Notifier) SendInvoice(ctx context.Context, msg ports.InvoiceMessage) error {
	subject := fmt.Sprintf("%s - Invoice for Order #%s", n.store.Name, msg.OrderID)
	filename := msg.Filename
	if filename == "" {
		filename = n.store.Name + "-Invoice-" + msg.OrderID + ".pdf"
	}
	return n.deliver(ctx, KindInvoice, tplInvoice, msg.To, templateData{
		Subject:      subject,
		CustomerName: msg.CustomerName,
		OrderID:      msg.OrderID,
		Total:        money.FormatWithCurrency(msg.Total, n.currency),
	}, []Attachment{{Filename: filename, ContentType: "application/pdf", Content: msg.PDF}})
}

func (n *Notifier) deliver(ctx context.Context, kind, tpl, to string, data templateData, attachments []Attachment) error {
	data.Store = n.store
	html, err := n.tpl.render(tpl, data)
	if err != nil {
		n.metrics.ObserveEmail(kind, ports.ResultFailed)
		return fmt.Errorf("%s: %v: %w", kind, err, domain.ErrNotificationFailed)
	}
	err = n.sender.Send(ctx, &Message{To: to, Subject: data.Subject, HTML: html, Attachments: attachments})
	if err != nil {
		n.metrics.ObserveEmail(kind, ports.ResultFailed)
		n.log.Error().Err(err).Str("kind", kind).Str("transport", n.sender.Name()).Msg("envío de correo fallido")
		return fmt.Errorf("%s: %v: %w", kind, err, domain.ErrNotificationFailed)
	}
	n.metrics.ObserveEmail(kind, ports.ResultSuccess)
	n.log.Debug().Str("kind", kind).Str("transport", n.sender.Name()).Msg("correo enviado")
	return nil
}
