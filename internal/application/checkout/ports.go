package checkout

import (
	"context"

	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
	"github.com/jhoicas/licenseshop-api/pkg/jwt"
)

// TxRunner ejecuta fn en una transacción con repos de órdenes y claves.
// Si fn devuelve error no queda nada persistido de lo hecho dentro de fn.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		keyRepo repository.LicenseKeyRepository,
	) error) error
}

// TokenParser valida el token de verificación de email (lo implementa *jwt.Signer).
type TokenParser interface {
	Parse(token, purpose string) (*jwt.Claims, error)
}
