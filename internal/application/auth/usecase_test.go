package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/licenseshop-api/internal/application/auth"
	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	pkgjwt "github.com/jhoicas/licenseshop-api/pkg/jwt"
)

func newAuth(t *testing.T, password string) (*auth.AuthUseCase, *pkgjwt.Signer) {
	t.Helper()
	signer, err := pkgjwt.NewSigner("test-secret", "test")
	require.NoError(t, err)
	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	return auth.NewAuthUseCase(hash, signer, 30*time.Minute), signer
}

func TestLogin_PasswordCorrecto(t *testing.T) {
	uc, signer := newAuth(t, "s3cret")

	resp, err := uc.Login(context.Background(), dto.AdminLoginRequest{Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, 1800, resp.ExpiresIn)

	claims, err := signer.Parse(resp.Token, pkgjwt.PurposeAdmin)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuth(t, "s3cret")
	_, err := uc.Login(context.Background(), dto.AdminLoginRequest{Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SinHashDeshabilitado(t *testing.T) {
	uc, _ := newAuth(t, "")
	_, err := uc.Login(context.Background(), dto.AdminLoginRequest{Password: ""})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
