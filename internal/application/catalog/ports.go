package catalog

import (
	"context"

	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
)

// CategoryTypeWriter escribe el tipo cacheado de subcategorías. Lo implementan el repositorio
// PostgreSQL (servidor) y el cliente REST (CLI).
type CategoryTypeWriter interface {
	BulkUpdateItemType(ctx context.Context, companyID string, ids []string, itemType entity.ItemType) (int, error)
	UpdateItemType(ctx context.Context, companyID, id string, itemType entity.ItemType) error
}

// TxRunner ejecuta fn dentro de una transacción con un repositorio de categorías atado a ella.
// Se usa al mover subárboles (nivel y tipo de todas las descendientes cambian juntos).
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(categoryRepo repository.CategoryRepository) error) error
}

// Notifier receptor de mensajes legibles para el usuario (toast en la UI, log en el servidor).
// La redacción es asunto de la UI; lo que importa es cuándo se emite cada mensaje.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Warning(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(context.Context, string) {}
func (nopNotifier) Warning(context.Context, string) {}
func (nopNotifier) Error(context.Context, string)   {}
