// Package auth: acceso del operador a las rutas de administración.
package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

// RoleAdmin único rol de operador.
const RoleAdmin = "admin"

// TokenIssuer emite tokens de operador.
type TokenIssuer interface {
	GenerateAdmin(subject, role string, ttl time.Duration) (string, error)
}

// AuthUseCase login de administración contra un hash bcrypt configurado.
type AuthUseCase struct {
	passwordHash []byte
	tokens       TokenIssuer
	ttl          time.Duration
}

// NewAuthUseCase construye el caso de uso. Con passwordHash vacío el login queda deshabilitado.
func NewAuthUseCase(passwordHash string, tokens TokenIssuer, ttl time.Duration) *AuthUseCase {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthUseCase{passwordHash: []byte(strings.TrimSpace(passwordHash)), tokens: tokens, ttl: ttl}
}

// Login verifica la contraseña y emite un token con rol admin.
func (uc *AuthUseCase) Login(_ context.Context, in dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if len(uc.passwordHash) == 0 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.tokens.GenerateAdmin(RoleAdmin, RoleAdmin, uc.ttl)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{Token: token, ExpiresIn: int(uc.ttl.Seconds())}, nil
}
