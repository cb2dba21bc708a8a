package email

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender transporte por la API v3 de SendGrid.
type SendGridSender struct {
	client *sendgrid.Client
	from   Address
}

// NewSendGridSender crea el transporte.
func NewSendGridSender(apiKey string, from Address) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey), from: from}
}

// Send envía el correo; un status fuera de 2xx es error.
func (s *SendGridSender) Send(ctx context.Context, msg *Message) error {
	resp, err := s.client.SendWithContext(ctx, s.build(msg))
	if err != nil {
		return fmt.Errorf("sendgrid: enviar a %s: %w", msg.To, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: API error %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *SendGridSender) build(msg *Message) *mail.SGMailV3 {
	m := mail.NewSingleEmail(mail.NewEmail(s.from.Name, s.from.Email), msg.Subject, mail.NewEmail("", msg.To), "", msg.HTML)
	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetFilename(a.Filename)
		att.SetType(a.ContentType)
		att.SetDisposition("attachment")
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		m.AddAttachment(att)
	}

	// Correo transaccional: sin reescritura de enlaces ni píxel de apertura.
	tracking := mail.NewTrackingSettings()
	click := mail.NewClickTrackingSetting()
	click.SetEnable(false)
	click.SetEnableText(false)
	tracking.SetClickTracking(click)
	open := mail.NewOpenTrackingSetting()
	open.SetEnable(false)
	tracking.SetOpenTracking(open)
	m.SetTrackingSettings(tracking)
	return m
}

// Name nombre del transporte.
func (s *SendGridSender) Name() string { return TransportSendGrid }
