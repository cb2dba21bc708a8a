// Package verification: verificación de email por código OTP de 6 dígitos.
package verification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
	"github.com/jhoicas/licenseshop-api/pkg/otp"
)

// Mensajes devueltos al cliente.
const (
	MsgCodeSent = "OTP sent successfully"
	MsgVerified = "Email verified successfully"
)

// TokenIssuer emite la prueba de verificación (lo implementa *jwt.Signer).
type TokenIssuer interface {
	GenerateVerification(email string, ttl time.Duration) (string, error)
}

// Config parámetros del flujo.
type Config struct {
	CodeTTL  time.Duration
	TokenTTL time.Duration
	// ExposeCode incluye el código en la respuesta (solo desarrollo).
	ExposeCode bool
}

// UseCase envío y verificación de códigos.
type UseCase struct {
	repo     repository.OtpRepository
	notifier ports.Notifier
	tokens   TokenIssuer
	gen      *otp.Generator
	metrics  ports.Metrics
	log      zerolog.Logger
	cfg      Config
	now      func() time.Time
}

// NewUseCase construye el caso de uso. tokens puede ser nil (sin token en la respuesta).
func NewUseCase(repo repository.OtpRepository, notifier ports.Notifier, tokens TokenIssuer, metrics ports.Metrics, log zerolog.Logger, cfg Config) *UseCase {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 10 * time.Minute
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{
		repo:     repo,
		notifier: notifier,
		tokens:   tokens,
		gen:      otp.NewGenerator(otp.Length),
		metrics:  metrics,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// NormalizeEmail forma canónica con la que se guardan y buscan emails.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendCode genera un código, lo guarda con expiración now+CodeTTL y lo envía por correo.
// No hay límite de envíos: cada llamada crea un código nuevo.
func (uc *UseCase) SendCode(ctx context.Context, email string) (*dto.SendOTPResponse, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	code, err := uc.gen.Generate()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	rec := &entity.OtpCode{
		ID:        uuid.New().String(),
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(uc.cfg.CodeTTL),
		CreatedAt: now,
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("guardar otp: %w", err)
	}
	if err := uc.notifier.SendVerificationCode(ctx, ports.VerificationMessage{
		To:      email,
		Code:    code,
		Expires: uc.cfg.CodeTTL,
	}); err != nil {
		return nil, err
	}
	uc.metrics.ObserveOTPSent()

	resp := &dto.SendOTPResponse{Message: MsgCodeSent, Email: email}
	if uc.cfg.ExposeCode {
		resp.DemoOTP = code
	}
	return resp, nil
}

// VerifyCode acepta el código solo si coincide con el registro usable más
// reciente del email. Un código aceptado no puede reutilizarse.
func (uc *UseCase) VerifyCode(ctx context.Context, email, code string) (*dto.VerifyOTPResponse, error) {
	email = NormalizeEmail(email)
	code = otp.NormalizeCode(code)
	if !uc.gen.Validate(code) {
		uc.metrics.ObserveOTPVerification(ports.ResultInvalid)
		return nil, domain.ErrInvalidOrExpiredCode
	}

	rec, err := uc.repo.LatestUsable(ctx, email, uc.now())
	if err != nil {
		return nil, fmt.Errorf("buscar otp: %w", err)
	}
	if rec == nil || !otp.Equal(rec.Code, code) {
		uc.metrics.ObserveOTPVerification(ports.ResultInvalid)
		return nil, domain.ErrInvalidOrExpiredCode
	}
	ok, err := uc.repo.MarkVerified(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("marcar otp: %w", err)
	}
	if !ok {
		uc.metrics.ObserveOTPVerification(ports.ResultInvalid)
		return nil, domain.ErrInvalidOrExpiredCode
	}
	uc.metrics.ObserveOTPVerification(ports.ResultSuccess)

	resp := &dto.VerifyOTPResponse{Message: MsgVerified, Verified: true}
	if uc.tokens != nil {
		token, err := uc.tokens.GenerateVerification(email, uc.cfg.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("token de verificación: %w", err)
		}
		resp.Token = token
	}
	return resp, nil
}
