package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// sesAPI subconjunto del cliente SES usado (tests).
type sesAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESSender transporte AWS SES. Siempre usa SendRawEmail para admitir adjuntos.
type SESSender struct {
	client sesAPI
	from   Address
}

// SESConfig credenciales opcionales; vacías usan la cadena por defecto de AWS.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewSESSender carga la configuración AWS y crea el cliente.
func NewSESSender(ctx context.Context, cfg SESConfig, from Address) (*SESSender, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: cargar configuración AWS: %w", err)
	}
	return &SESSender{client: ses.NewFromConfig(awsCfg), from: from}, nil
}

// Send envía el mensaje MIME completo.
func (s *SESSender) Send(ctx context.Context, msg *Message) error {
	m := newMIMEMessage(s.from, msg)
	var raw bytes.Buffer
	if _, err := m.WriteTo(&raw); err != nil {
		return fmt.Errorf("ses: construir mensaje: %w", err)
	}
	_, err := s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(m.FormatAddress(s.from.Email, s.from.Name)),
		Destinations: []string{msg.To},
		RawMessage:   &types.RawMessage{Data: raw.Bytes()},
	})
	if err != nil {
		return fmt.Errorf("ses: enviar a %s: %w", msg.To, err)
	}
	return nil
}

// Name nombre del transporte.
func (s *SESSender) Name() string { return TransportSES }
