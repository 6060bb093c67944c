// Package numbering define las familias de documentos y el formato de su numeración:
// prefijo (letras + periodo) seguido de una secuencia con ceros a la izquierda.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Retail-api/internal/domain"
)

// Family familia de documento numerado.
type Family string

const (
	FamilySale      Family = "sale"
	FamilySaleNote  Family = "sale_note"
	FamilyPurchase  Family = "purchase"
	FamilyQuotation Family = "quotation"
	FamilyNote      Family = "note"
)

type format struct {
	letters string
	monthly bool
	width   int
}

var formats = map[Family]format{
	FamilySale:      {letters: "V", monthly: true, width: 6},
	FamilySaleNote:  {letters: "NV", monthly: true, width: 6},
	FamilyPurchase:  {letters: "C", monthly: true, width: 5},
	FamilyQuotation: {letters: "COT", monthly: false, width: 4},
	FamilyNote:      {letters: "NC", monthly: false, width: 4},
}

// ParseFamily valida el nombre de familia.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formats[f]; !ok {
		return "", domain.Invalid("family", "familia de numeración desconocida")
	}
	return f, nil
}

// Prefix prefijo del periodo al que pertenece at (V202601, COT2026, ...).
func Prefix(f Family, at time.Time) string {
	ft := formats[f]
	if ft.monthly {
		return fmt.Sprintf("%s%04d%02d", ft.letters, at.Year(), int(at.Month()))
	}
	return fmt.Sprintf("%s%04d", ft.letters, at.Year())
}

// Format arma el número completo.
func Format(f Family, prefix string, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, formats[f].width, seq)
}

// ParseSequence extrae la secuencia numérica que sigue al prefijo.
// Devuelve false si number no pertenece al prefijo o el sufijo no es numérico.
func ParseSequence(prefix, number string) (int64, bool) {
	if !strings.HasPrefix(number, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(number[len(prefix):], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
