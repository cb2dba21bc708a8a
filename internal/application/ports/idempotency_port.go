package ports

import "context"

// IdempotencyHeader cabecera HTTP con la clave de idempotencia del cliente.
const IdempotencyHeader = "Idempotency-Key"

// IdempotencyStore guarda la respuesta de una operación por clave de cliente.
type IdempotencyStore interface {
	// Begin reserva la clave. Si ya hay una respuesta guardada la devuelve en
	// cached; si otra petición la tiene reservada devuelve domain.ErrIdempotencyInFlight.
	Begin(ctx context.Context, key string) (cached []byte, err error)
	// Complete guarda la respuesta final para repeticiones posteriores.
	Complete(ctx context.Context, key string, response []byte) error
	// Release libera la reserva sin guardar respuesta (error no definitivo).
	Release(ctx context.Context, key string) error
}
