package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

var shortCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,4}$`)

// NormalizeShortCode recorta espacios y pasa a mayúsculas.
func NormalizeShortCode(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// NormalizeName recorta y colapsa espacios internos.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sameName(a, b string) bool {
	fold := cases.Fold()
	return fold.String(NormalizeName(a)) == fold.String(NormalizeName(b))
}

// ShortCodeTaken true si otra categoría (distinta de excludeID) ya usa el código corto.
func (s *CategoryStore) ShortCodeTaken(shortCode, excludeID string) bool {
	for _, c := range s.all {
		if c.ID != excludeID && strings.EqualFold(c.ShortCode, shortCode) {
			return true
		}
	}
	return false
}

// SiblingNameTaken true si ya existe una hermana con el mismo nombre bajo parentID.
func (s *CategoryStore) SiblingNameTaken(parentID, name, excludeID string) bool {
	for _, c := range s.children[parentID] {
		if c.ID != excludeID && sameName(c.Name, name) {
			return true
		}
	}
	return false
}

// ValidateCategory pre-validación local (rápida) de una categoría a guardar contra la instantánea.
// No reemplaza las restricciones del backend: una carrera perdida se reporta como conflicto al persistir.
// c.ID vacío indica alta.
func ValidateCategory(store *CategoryStore, c *entity.Category) error {
	if c == nil {
		return fmt.Errorf("%w: categoría nula", domain.ErrInvalidInput)
	}
	if NormalizeName(c.Name) == "" {
		return fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(c.ShortCode); n < 2 || n > 4 {
		return fmt.Errorf("%w: el código corto debe tener entre 2 y 4 caracteres", domain.ErrInvalidInput)
	}
	if !shortCodePattern.MatchString(c.ShortCode) {
		return fmt.Errorf("%w: el código corto solo admite letras mayúsculas y dígitos", domain.ErrInvalidInput)
	}
	if c.ParentID != "" {
		if c.ID != "" && c.ParentID == c.ID {
			return fmt.Errorf("%w: una categoría no puede ser su propio padre", domain.ErrHierarchyCycle)
		}
		if _, ok := store.Get(c.ParentID); !ok {
			return fmt.Errorf("%w: categoría padre %s inexistente", domain.ErrInvalidInput, c.ParentID)
		}
		if c.ID != "" && store.IsAncestor(c.ID, c.ParentID) {
			return fmt.Errorf("%w: el padre elegido es descendiente de la categoría", domain.ErrHierarchyCycle)
		}
	} else if !c.ItemType.Valid() {
		return fmt.Errorf("%w: la categoría raíz requiere un tipo de ítem válido", domain.ErrInvalidInput)
	}
	if store.ShortCodeTaken(c.ShortCode, c.ID) {
		return domain.ErrShortCodeExists
	}
	if store.SiblingNameTaken(c.ParentID, c.Name, c.ID) {
		return domain.ErrNameExists
	}
	return nil
}
