// Package memory implementa los puertos de persistencia en memoria (modo desarrollo y tests).
// Replica las restricciones de unicidad del esquema PostgreSQL para que los conflictos se vean igual.
package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ catalog.TxRunner              = (*CategoryRepo)(nil)
)

// CategoryRepo almacenamiento de categorías en memoria, seguro para uso concurrente.
type CategoryRepo struct {
	mu         sync.RWMutex
	categories map[string]entity.Category
}

// NewCategoryRepository crea el repositorio, opcionalmente con datos iniciales.
func NewCategoryRepository(seed ...*entity.Category) *CategoryRepo {
	r := &CategoryRepo{categories: make(map[string]entity.Category, len(seed))}
	for _, c := range seed {
		r.categories[c.ID] = *c
	}
	return r
}

func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// checkUnique emula los índices únicos (company_id, short_code) y (company_id, parent_id, nombre).
// Los nombres se comparan con cases.Fold, igual que la validación de dominio.
func (r *CategoryRepo) checkUnique(c *entity.Category) error {
	for _, other := range r.categories {
		if other.ID == c.ID || other.CompanyID != c.CompanyID {
			continue
		}
		if strings.EqualFold(other.ShortCode, c.ShortCode) {
			return domain.ErrShortCodeExists
		}
		if other.ParentID == c.ParentID && foldName(other.Name) == foldName(c.Name) {
			return domain.ErrNameExists
		}
	}
	return nil
}

// Las escrituras usan como clave el ID ya almacenado (c.ID), nunca el id recibido:
// los parámetros de ruta de fiber pueden apuntar al buffer de la petición.

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; ok {
		return domain.ErrDuplicate
	}
	if err := r.checkUnique(category); err != nil {
		return err
	}
	r.categories[category.ID] = *category
	return nil
}

// GetByID obtiene una categoría por ID (nil si no existe).
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkUnique(category); err != nil {
		return err
	}
	r.categories[category.ID] = *category
	return nil
}

// ListByCompany devuelve copias de todas las categorías de la empresa.
func (r *CategoryRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.CompanyID != companyID {
			continue
		}
		c := c
		list = append(list, &c)
	}
	return list, nil
}

// Delete elimina una categoría. Rechaza si alguna categoría la referencia como padre.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ParentID == id {
			return domain.ErrHasChildren
		}
	}
	delete(r.categories, id)
	return nil
}

// BulkUpdateItemType reescribe el tipo de las categorías indicadas de la empresa.
func (r *CategoryRepo) BulkUpdateItemType(_ context.Context, companyID string, ids []string, itemType entity.ItemType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range ids {
		c, ok := r.categories[id]
		if !ok || c.CompanyID != companyID {
			continue
		}
		c.ItemType = itemType
		r.categories[c.ID] = c
		n++
	}
	return n, nil
}

// UpdateItemType reescribe el tipo de una categoría.
func (r *CategoryRepo) UpdateItemType(_ context.Context, companyID, id string, itemType entity.ItemType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	c.ItemType = itemType
	r.categories[c.ID] = c
	return nil
}

// UpdateHierarchy reescribe nivel y tipo cacheado.
func (r *CategoryRepo) UpdateHierarchy(_ context.Context, id string, level int, itemType entity.ItemType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Level = level
	c.ItemType = itemType
	r.categories[c.ID] = c
	return nil
}

// RunCatalog ejecuta fn sobre el mismo repositorio. Si fn falla restaura el estado previo.
func (r *CategoryRepo) RunCatalog(ctx context.Context, fn func(categoryRepo repository.CategoryRepository) error) error {
	r.mu.RLock()
	backup := make(map[string]entity.Category, len(r.categories))
	for k, v := range r.categories {
		backup[k] = v
	}
	r.mu.RUnlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.categories = backup
		r.mu.Unlock()
		return err
	}
	return nil
}
