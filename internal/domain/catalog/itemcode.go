package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

// CodeDigits ancho mínimo del secuencial en los códigos de ítem.
const CodeDigits = 4

// ShortCodeFor prefijo de códigos de la categoría. Si falta short_code (datos heredados)
// usa los primeros 4 caracteres alfanuméricos del nombre en mayúsculas.
func ShortCodeFor(c *entity.Category) string {
	if c.ShortCode != "" {
		return c.ShortCode
	}
	var b strings.Builder
	n := 0
	for _, r := range cases.Upper(language.Und).String(c.Name) {
		if n == 4 {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// FormatCode arma {shortCode}-{seq con 4 dígitos}.
func FormatCode(shortCode string, seq int) string {
	return fmt.Sprintf("%s-%0*d", shortCode, CodeDigits, seq)
}

func codePattern(shortCode string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(shortCode) + `-(\d{4,})$`)
}

// codeSeq extrae el secuencial de un código canónico de la categoría. Rechaza variantes con
// ceros de más (LBL-00001 frente a LBL-0001) para que un secuencial nunca aparezca dos veces.
func codeSeq(re *regexp.Regexp, shortCode, code string) (int, bool) {
	m := re.FindStringSubmatch(code)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || FormatCode(shortCode, n) != code {
		return 0, false
	}
	return n, true
}

// MatchesCategory informa si code es un código canónico {shortCode}-NNNN de la categoría.
func MatchesCategory(shortCode, code string) bool {
	_, ok := codeSeq(codePattern(shortCode), shortCode, code)
	return ok
}

// NextCode deriva el siguiente código de la categoría: máximo secuencial existente + 1
// (no la cantidad de códigos). El resultado es una vista previa, no una reserva:
// la unicidad real la garantiza el backend al insertar.
func NextCode(store *CategoryStore, categoryID string, existingCodes []string) (string, error) {
	c, ok := store.Get(categoryID)
	if !ok {
		return "", fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
	}
	shortCode := ShortCodeFor(c)
	if shortCode == "" {
		return "", fmt.Errorf("%w: la categoría %s no tiene código corto", domain.ErrInvalidInput, c.Name)
	}
	re := codePattern(shortCode)
	maxSeq := 0
	for _, code := range existingCodes {
		if n, ok := codeSeq(re, shortCode, code); ok && n > maxSeq {
			maxSeq = n
		}
	}
	return FormatCode(shortCode, maxSeq+1), nil
}
