// Package email: correo transaccional (OTP, claves, factura) sobre varios transportes.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Transportes soportados (EMAIL_TRANSPORT).
const (
	TransportLog      = "log"
	TransportSMTP     = "smtp"
	TransportSendGrid = "sendgrid"
	TransportSES      = "ses"
)

// Attachment adjunto binario.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message correo listo para enviar.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender transporte de correo.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}

// Address remitente.
type Address struct {
	Email string
	Name  string
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// LogSender no envía: registra destinatario, asunto y adjuntos (desarrollo).
type LogSender struct {
	log zerolog.Logger
}

// NewLogSender crea el transporte de desarrollo.
func NewLogSender(log zerolog.Logger) *LogSender { return &LogSender{log: log} }

// Send registra el correo.
func (s *LogSender) Send(_ context.Context, msg *Message) error {
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Filename)
	}
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("attachments", strings.Join(names, ",")).
		Msg("email (modo demo, no enviado)")
	return nil
}

// Name nombre del transporte.
func (s *LogSender) Name() string { return TransportLog }
