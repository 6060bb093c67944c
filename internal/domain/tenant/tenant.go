// Package tenant define el identificador de tenant que acota toda lectura y escritura.
//
// Los repositorios reciben un tenant.ID explícito en cada operación; no existe
// un tenant global de proceso.
package tenant

import (
	"context"
	"strings"
)

// ID identificador del tenant activo (organización cliente).
type ID string

// String devuelve el valor crudo.
func (id ID) String() string { return string(id) }

// Valid reporta si el identificador no está vacío.
func (id ID) Valid() bool { return strings.TrimSpace(string(id)) != "" }

type ctxKey struct{}

// WithID adjunta el tenant al contexto.
func WithID(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext devuelve el tenant adjunto al contexto, si existe.
func FromContext(ctx context.Context) (ID, bool) {
	id, ok := ctx.Value(ctxKey{}).(ID)
	if !ok || !id.Valid() {
		return "", false
	}
	return id, true
}
