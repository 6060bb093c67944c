// Package idempotency guarda las claves Idempotency-Key de las peticiones que
// crean documentos (ventas, compras).
package idempotency

import (
	"context"
	"time"
)

// DefaultTTL vigencia de una clave si no se configura otra.
const DefaultTTL = 24 * time.Hour

// Store reserva claves de forma atómica.
type Store interface {
	// Acquire reserva key por ttl. Devuelve false si ya estaba reservada.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release libera la clave para que el cliente pueda reintentar.
	Release(ctx context.Context, key string) error
	Close() error
}
