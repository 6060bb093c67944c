package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/infrastructure/idempotency"
	"github.com/rs/zerolog"
)

// HeaderIdempotencyKey cabecera opcional en los POST que crean documentos.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// Idempotency reserva la clave (por tenant y ruta) antes de ejecutar el handler.
// Una clave repetida responde 409; si la petición falla la clave se libera.
func Idempotency(store idempotency.Store, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if key == "" || store == nil {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return badRequest(c, "INVALID_IDEMPOTENCY_KEY", "Idempotency-Key demasiado larga")
		}
		scoped := GetTenant(c).String() + ":" + strings.TrimSuffix(c.Path(), "/") + ":" + key
		ok, err := store.Acquire(c.UserContext(), scoped, ttl)
		if err != nil {
			return writeError(c, err)
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE_REQUEST", Message: "ya se procesó una petición con esta Idempotency-Key",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if rerr := store.Release(c.UserContext(), scoped); rerr != nil {
				zerolog.Ctx(c.UserContext()).Warn().Err(rerr).Msg("liberar Idempotency-Key")
			}
		}
		return err
	}
}
