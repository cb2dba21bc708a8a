package email

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPSender transporte SMTP con gomail (STARTTLS cuando el servidor lo ofrece).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   Address
}

// NewSMTPSender crea el transporte.
func NewSMTPSender(host string, port int, user, pass string, from Address) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

// Send construye el mensaje MIME y lo entrega.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.build(msg)); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) build(msg *Message) *gomail.Message {
	return newMIMEMessage(s.from, msg)
}

// newMIMEMessage mensaje MIME común a SMTP y SES: cuerpo HTML y adjuntos.
func newMIMEMessage(from Address, msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from.Email, from.Name)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	for _, a := range msg.Attachments {
		content := a.Content
		m.Attach(a.Filename,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		)
	}
	return m
}

// Name nombre del transporte.
func (s *SMTPSender) Name() string { return TransportSMTP }
