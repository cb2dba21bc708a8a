// Package cache: almacén de idempotencia del checkout sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

var _ ports.IdempotencyStore = (*RedisIdempotencyStore)(nil)

const (
	keyPrefix     = "licenseshop:idempotency:"
	pendingMarker = "__pending__"
	// lockTTL cota de una petición en curso; expira si el proceso muere.
	lockTTL = 2 * time.Minute
)

// RedisIdempotencyStore reserva claves con SETNX y guarda la respuesta final con TTL.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient conecta a partir de una URL redis:// y verifica con PING.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: URL inválida: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// NewRedisIdempotencyStore crea el almacén; ttl es la retención de respuestas.
func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisIdempotencyStore{client: client, ttl: ttl}
}

// Begin reserva la clave o devuelve la respuesta guardada.
func (s *RedisIdempotencyStore) Begin(ctx context.Context, key string) ([]byte, error) {
	k := keyPrefix + key
	ok, err := s.client.SetNX(ctx, k, pendingMarker, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: reservar clave: %w", err)
	}
	if ok {
		return nil, nil
	}
	val, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// expiró entre SETNX y GET: reintentar una vez
		if ok, err := s.client.SetNX(ctx, k, pendingMarker, lockTTL).Result(); err == nil && ok {
			return nil, nil
		}
		return nil, domain.ErrIdempotencyInFlight
	}
	if err != nil {
		return nil, fmt.Errorf("redis: leer clave: %w", err)
	}
	if string(val) == pendingMarker {
		return nil, domain.ErrIdempotencyInFlight
	}
	return val, nil
}

// Complete guarda la respuesta final.
func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, response []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, response, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar respuesta: %w", err)
	}
	return nil
}

// Release libera la reserva.
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis: liberar clave: %w", err)
	}
	return nil
}
