package repository

import (
	"context"

	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	// Create devuelve domain.ErrDuplicate si el item_code ya existe en la empresa.
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// ListByCompany lista ítems; categoryID vacío = todas las categorías.
	ListByCompany(ctx context.Context, companyID, categoryID string, limit, offset int) ([]*entity.Item, error)
	ListCodesByCategory(ctx context.Context, companyID, categoryID string) ([]string, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	Delete(ctx context.Context, id string) error
}
