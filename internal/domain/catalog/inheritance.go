package catalog

import (
	"fmt"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

// ResolveType tipo efectivo de la categoría: el propio si es raíz, si no el de su raíz.
// Nunca se usa la copia cacheada de un ancestro intermedio.
// La categoría puede no estar aún en la instantánea (alta en curso): se resuelve desde su padre.
func ResolveType(store *CategoryStore, c *entity.Category) (entity.ItemType, error) {
	if c == nil {
		return "", fmt.Errorf("%w: categoría nula", domain.ErrInvalidInput)
	}
	if c.IsRoot() {
		return c.ItemType, nil
	}
	if store.IsAncestor(c.ID, c.ParentID) {
		return "", fmt.Errorf("%w: %s es ancestro de sí misma", domain.ErrHierarchyCycle, c.ID)
	}
	root, err := store.Root(c.ParentID)
	if err != nil {
		return "", err
	}
	return root.ItemType, nil
}

// TypeChangePlan resultado de la primera fase del cambio de tipo en una raíz.
// Se aplica con un TypeChangeApplier solo después de que el llamador confirme.
type TypeChangePlan struct {
	CompanyID   string
	RootID      string
	OldType     entity.ItemType
	NewType     entity.ItemType
	Descendants []*entity.Category
}

// RequiresConfirmation true si el cambio sobrescribe el tipo de al menos una subcategoría.
func (p *TypeChangePlan) RequiresConfirmation() bool {
	return len(p.Descendants) > 0
}

// DescendantIDs IDs de las subcategorías afectadas.
func (p *TypeChangePlan) DescendantIDs() []string {
	ids := make([]string, 0, len(p.Descendants))
	for _, d := range p.Descendants {
		ids = append(ids, d.ID)
	}
	return ids
}

// PlanTypeChange calcula las subcategorías cuyo tipo cacheado pasará a newType.
// Solo es válido sobre raíces. No tiene efectos secundarios.
func PlanTypeChange(store *CategoryStore, root *entity.Category, newType entity.ItemType) (*TypeChangePlan, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: categoría nula", domain.ErrInvalidInput)
	}
	if !root.IsRoot() {
		return nil, domain.ErrNotRootCategory
	}
	if !newType.Valid() {
		return nil, fmt.Errorf("%w: tipo de ítem %q", domain.ErrInvalidInput, newType)
	}
	return &TypeChangePlan{
		CompanyID:   root.CompanyID,
		RootID:      root.ID,
		OldType:     root.ItemType,
		NewType:     newType,
		Descendants: store.Descendants(root.ID),
	}, nil
}
