package http

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal se valida como número: gt, gte, etc.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los errores usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

func validationFields(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields[ns] = fe.Tag()
	}
	return fields
}

// bindJSON decodifica el cuerpo y corre las validaciones de los tags.
// Si falla escribe la respuesta 400 y devuelve false.
func bindJSON(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return false, writeError(c, err)
	}
	return true, nil
}

// bindQuery igual que bindJSON para parámetros de consulta.
func bindQuery(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, badRequest(c, "INVALID_QUERY", "parámetros de consulta inválidos")
	}
	if err := validate.Struct(out); err != nil {
		return false, writeError(c, err)
	}
	return true, nil
}

// dateRange lee from/to (RFC3339 o YYYY-MM-DD). Un to con solo fecha incluye el día completo.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = parseDate(c.Query("from"), false); err != nil {
		return nil, nil, domain.Invalid("from", "fecha inválida")
	}
	if to, err = parseDate(c.Query("to"), true); err != nil {
		return nil, nil, domain.Invalid("to", "fecha inválida")
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.Invalid("to", "debe ser posterior a from")
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
