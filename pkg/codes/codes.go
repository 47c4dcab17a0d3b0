// Package codes normaliza códigos de lote y de ubicación escritos a mano.
package codes

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize quita acentos, pasa a mayúsculas y reemplaza los espacios por guiones.
// "  lote ação 12 " -> "LOTE-ACAO-12".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(cases.Upper(language.Und).String(out)), "-")
}
