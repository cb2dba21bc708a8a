package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

type idemEntry struct {
	response []byte // nil mientras la petición está en curso
	expires  time.Time
}

// IdempotencyStore versión en proceso del almacén de idempotencia (sin Redis).
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idemEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewIdempotencyStore crea el almacén con la retención indicada.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{entries: make(map[string]idemEntry), ttl: ttl, now: time.Now}
}

// Begin reserva la clave o devuelve la respuesta guardada.
func (s *IdempotencyStore) Begin(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expires) {
		if e.response == nil {
			return nil, domain.ErrIdempotencyInFlight
		}
		return e.response, nil
	}
	s.entries[key] = idemEntry{expires: now.Add(s.ttl)}
	return nil, nil
}

// Complete guarda la respuesta final.
func (s *IdempotencyStore) Complete(_ context.Context, key string, response []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idemEntry{response: append([]byte(nil), response...), expires: s.now().Add(s.ttl)}
	return nil
}

// Release libera la reserva.
func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
