package repository

import (
	"context"

	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// El backend es la fuente de verdad: las restricciones de unicidad se aplican al escribir.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// ListByCompany devuelve todas las categorías de la empresa (lista plana, sin paginar).
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
	// BulkUpdateItemType sobrescribe el tipo cacheado de las categorías indicadas. Lista vacía = no-op.
	BulkUpdateItemType(ctx context.Context, companyID string, ids []string, itemType entity.ItemType) (int, error)
	UpdateItemType(ctx context.Context, companyID, id string, itemType entity.ItemType) error
	// UpdateHierarchy reescribe nivel y tipo cacheado de una categoría (usado al mover subárboles).
	UpdateHierarchy(ctx context.Context, id string, level int, itemType entity.ItemType) error
}
