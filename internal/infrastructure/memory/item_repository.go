package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo almacenamiento de ítems en memoria con unicidad (company_id, item_code).
type ItemRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Item
}

// NewItemRepository crea el repositorio, opcionalmente con datos iniciales.
func NewItemRepository(seed ...*entity.Item) *ItemRepo {
	r := &ItemRepo{items: make(map[string]entity.Item, len(seed))}
	for _, it := range seed {
		r.items[it.ID] = *it
	}
	return r
}

// Create persiste un ítem. Devuelve domain.ErrDuplicate si el código ya existe en la empresa.
func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.items {
		if other.ID == item.ID || (other.CompanyID == item.CompanyID && other.ItemCode == item.ItemCode) {
			return domain.ErrDuplicate
		}
	}
	r.items[item.ID] = *item
	return nil
}

// GetByID obtiene un ítem por ID (nil si no existe).
func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// Update actualiza un ítem existente. El código no cambia.
func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *item
	updated.ItemCode = prev.ItemCode
	updated.CategoryID = prev.CategoryID
	r.items[prev.ID] = updated
	return nil
}

// ListByCompany lista ítems por empresa (y categoría si se indica), más recientes primero.
func (r *ItemRepo) ListByCompany(_ context.Context, companyID, categoryID string, limit, offset int) ([]*entity.Item, error) {
	r.mu.RLock()
	var list []*entity.Item
	for _, it := range r.items {
		if it.CompanyID != companyID || (categoryID != "" && it.CategoryID != categoryID) {
			continue
		}
		it := it
		list = append(list, &it)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ItemCode > list[j].ItemCode
	})
	if offset >= len(list) {
		return []*entity.Item{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// ListCodesByCategory códigos de los ítems de la categoría.
func (r *ItemRepo) ListCodesByCategory(_ context.Context, companyID, categoryID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var codes []string
	for _, it := range r.items {
		if it.CompanyID == companyID && it.CategoryID == categoryID {
			codes = append(codes, it.ItemCode)
		}
	}
	return codes, nil
}

// CountByCategory cantidad de ítems asignados a la categoría.
func (r *ItemRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, it := range r.items {
		if it.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}
