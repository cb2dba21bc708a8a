package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Options configuración del transporte.
type Options struct {
	Transport      string
	From           Address
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	SendGridAPIKey string
	SES            SESConfig
}

// NewSender selecciona el transporte por nombre.
func NewSender(ctx context.Context, opts Options, log zerolog.Logger) (Sender, error) {
	switch opts.Transport {
	case TransportLog, "":
		return NewLogSender(log), nil
	case TransportSMTP:
		if opts.SMTPHost == "" {
			return nil, fmt.Errorf("email: SMTP_HOST requerido para transporte smtp")
		}
		return NewSMTPSender(opts.SMTPHost, opts.SMTPPort, opts.SMTPUser, opts.SMTPPass, opts.From), nil
	case TransportSendGrid:
		if opts.SendGridAPIKey == "" {
			return nil, fmt.Errorf("email: SENDGRID_API_KEY requerido para transporte sendgrid")
		}
		return NewSendGridSender(opts.SendGridAPIKey, opts.From), nil
	case TransportSES:
		return NewSESSender(ctx, opts.SES, opts.From)
	default:
		return nil, fmt.Errorf("email: transporte desconocido %q", opts.Transport)
	}
}
