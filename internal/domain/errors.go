package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict with current state")

	// Catálogo y checkout
	ErrUnknownProduct   = errors.New("product not found")
	ErrEmailNotVerified = errors.New("email address has not been verified")

	// Verificación de email
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")

	// Notificaciones
	ErrNotificationFailed = errors.New("notification delivery failed")

	// Idempotencia: otra petición con la misma clave sigue en curso.
	ErrIdempotencyInFlight = errors.New("a request with this idempotency key is already in progress")
	// La clave ya se usó con otro cuerpo de petición.
	ErrIdempotencyMismatch = errors.New("idempotency key reused with a different request body")
)

// UnknownProductError producto solicitado que no existe o no está a la venta.
// errors.Is(err, ErrUnknownProduct) es true.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return "Product " + e.ProductID + " not found"
}

// Is permite comparar contra ErrUnknownProduct.
func (e *UnknownProductError) Is(target error) bool {
	return target == ErrUnknownProduct
}
