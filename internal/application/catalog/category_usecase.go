package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-catalog/internal/application/dto"
	"github.com/jhoicas/inventario-catalog/internal/domain"
	domcatalog "github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
)

// ConfirmationRequiredError estado AwaitingConfirmation del guardado: la raíz cambió de tipo
// y tiene subcategorías. No se persistió nada; el cliente debe reenviar con confirm_type_change.
type ConfirmationRequiredError struct {
	Plan dto.TypeChangePlanResponse
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%s (%d subcategorías)", domain.ErrConfirmationRequired, len(e.Plan.Descendants))
}

func (e *ConfirmationRequiredError) Unwrap() error { return domain.ErrConfirmationRequired }

// CategoryUseCase casos de uso del árbol de categorías.
// Cada operación trabaja sobre una instantánea recién leída del repositorio (CategoryStore).
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	itemRepo repository.ItemRepository
	tx       TxRunner
	applier  *TypeChangeApplier
	notifier Notifier
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	repo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	tx TxRunner,
	applier *TypeChangeApplier,
	notifier Notifier,
) *CategoryUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &CategoryUseCase{repo: repo, itemRepo: itemRepo, tx: tx, applier: applier, notifier: notifier}
}

// Snapshot carga todas las categorías de la empresa en un CategoryStore.
func (uc *CategoryUseCase) Snapshot(ctx context.Context, companyID string) (*domcatalog.CategoryStore, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return domcatalog.NewCategoryStore(list), nil
}

func (uc *CategoryUseCase) load(ctx context.Context, companyID, id string) (*domcatalog.CategoryStore, *entity.Category, error) {
	store, err := uc.Snapshot(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	c, ok := store.Get(id)
	if !ok {
		return store, nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return store, c, nil
}

// List lista todas las categorías de la empresa.
func (uc *CategoryUseCase) List(ctx context.Context, companyID string) (*dto.CategoryListResponse, error) {
	store, err := uc.Snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return listResponse(store, store.All()), nil
}

// Leaves lista las categorías hoja (destinos válidos para ítems).
func (uc *CategoryUseCase) Leaves(ctx context.Context, companyID string) (*dto.CategoryListResponse, error) {
	store, err := uc.Snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return listResponse(store, store.Leaves()), nil
}

func listResponse(store *domcatalog.CategoryStore, list []*entity.Category) *dto.CategoryListResponse {
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(store, c))
	}
	return &dto.CategoryListResponse{Items: items, Total: len(items)}
}

// Tree devuelve el árbol anidado.
func (uc *CategoryUseCase) Tree(ctx context.Context, companyID string) ([]dto.CategoryTreeNode, error) {
	store, err := uc.Snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toTreeNodes(store, store.Tree()), nil
}

// GetByID obtiene una categoría con su ruta. Devuelve nil si no existe en la empresa.
func (uc *CategoryUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CategoryResponse, error) {
	store, c, err := uc.load(ctx, companyID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if _, err := store.Path(id); err != nil {
		return nil, err
	}
	out := toCategoryResponse(store, c)
	return &out, nil
}

// Create crea una categoría. Nivel y tipo se derivan del padre; las hijas nunca definen tipo propio.
func (uc *CategoryUseCase) Create(ctx context.Context, companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	store, err := uc.Snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	c := &entity.Category{
		CompanyID: companyID,
		ParentID:  in.ParentID,
		Name:      domcatalog.NormalizeName(in.Name),
		ShortCode: domcatalog.NormalizeShortCode(in.ShortCode),
		ItemType:  entity.ItemType(domcatalog.NormalizeShortCode(in.ItemType)),
		IsActive:  true,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := domcatalog.ValidateCategory(store, c); err != nil {
		uc.notifier.Warning(ctx, err.Error())
		return nil, err
	}
	if c.Level, err = store.NextLevel(c.ParentID); err != nil {
		return nil, err
	}
	if c.ItemType, err = domcatalog.ResolveType(store, c); err != nil {
		return nil, err
	}

	now := time.Now()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := uc.repo.Create(ctx, c); err != nil {
		uc.notifyFailure(ctx, err)
		return nil, err
	}
	uc.notifier.Success(ctx, fmt.Sprintf("Categoría %s creada", c.Name))

	// La nueva categoría aún no está en la instantánea: se agrega para calcular ruta y hoja.
	store = domcatalog.NewCategoryStore(append(store.All(), c))
	out := toCategoryResponse(store, c)
	return &out, nil
}

// PlanTypeChange primera fase del cambio de tipo de una raíz (sin efectos secundarios).
func (uc *CategoryUseCase) PlanTypeChange(ctx context.Context, companyID, id, itemType string) (*dto.TypeChangePlanResponse, error) {
	store, c, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	plan, err := domcatalog.PlanTypeChange(store, c, entity.ItemType(domcatalog.NormalizeShortCode(itemType)))
	if err != nil {
		return nil, err
	}
	out := toPlanResponse(plan)
	return &out, nil
}

// Update guarda una categoría siguiendo la máquina de estados
// Idle → ValidatingForm → (AwaitingConfirmation) → Applying → Idle.
// Si la raíz cambia de tipo y tiene subcategorías sin confirm_type_change devuelve
// *ConfirmationRequiredError sin persistir nada.
func (uc *CategoryUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCategoryRequest) (*dto.CategorySaveResponse, error) {
	store, current, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	// ValidatingForm
	draft := *current
	if in.Name != nil {
		draft.Name = domcatalog.NormalizeName(*in.Name)
	}
	if in.ShortCode != nil {
		draft.ShortCode = domcatalog.NormalizeShortCode(*in.ShortCode)
	}
	if in.ParentID != nil {
		draft.ParentID = *in.ParentID
	}
	if in.ItemType != nil {
		draft.ItemType = entity.ItemType(domcatalog.NormalizeShortCode(*in.ItemType))
	}
	if in.IsActive != nil {
		draft.IsActive = *in.IsActive
	}
	if err := domcatalog.ValidateCategory(store, &draft); err != nil {
		uc.notifier.Warning(ctx, err.Error())
		return nil, err
	}
	if draft.Level, err = store.NextLevel(draft.ParentID); err != nil {
		return nil, err
	}
	if draft.ItemType, err = domcatalog.ResolveType(store, &draft); err != nil {
		return nil, err
	}

	var plan *domcatalog.TypeChangePlan
	if current.IsRoot() && draft.IsRoot() && draft.ItemType != current.ItemType {
		if plan, err = domcatalog.PlanTypeChange(store, current, draft.ItemType); err != nil {
			return nil, err
		}
		// AwaitingConfirmation
		if plan.RequiresConfirmation() && !in.ConfirmTypeChange {
			return nil, &ConfirmationRequiredError{Plan: toPlanResponse(plan)}
		}
	}

	// Applying
	draft.UpdatedAt = time.Now()
	if draft.ParentID != current.ParentID {
		err = uc.moveSubtree(ctx, store, &draft)
	} else {
		err = uc.repo.Update(ctx, &draft)
	}
	if err != nil {
		uc.notifyFailure(ctx, err)
		return nil, err
	}

	out := &dto.CategorySaveResponse{}
	if plan != nil && plan.RequiresConfirmation() && !in.SkipCascade {
		res := uc.applier.Apply(ctx, plan)
		out.TypeChange = toTypeChangeResultResponse(res)
	}
	uc.notifier.Success(ctx, fmt.Sprintf("Categoría %s actualizada", draft.Name))

	list := make([]*entity.Category, 0, store.Len())
	for _, c := range store.All() {
		if c.ID == draft.ID {
			list = append(list, &draft)
			continue
		}
		list = append(list, c)
	}
	out.Category = toCategoryResponse(domcatalog.NewCategoryStore(list), &draft)
	return out, nil
}

// moveSubtree guarda una categoría que cambió de padre y recalcula nivel y tipo cacheado
// de todo su subárbol dentro de una misma transacción.
func (uc *CategoryUseCase) moveSubtree(ctx context.Context, store *domcatalog.CategoryStore, moved *entity.Category) error {
	return uc.tx.RunCatalog(ctx, func(repo repository.CategoryRepository) error {
		if err := repo.Update(ctx, moved); err != nil {
			return err
		}
		var walk func(parentID string, level int) error
		walk = func(parentID string, level int) error {
			if level-moved.Level > domcatalog.MaxDepth {
				return fmt.Errorf("%w: subárbol de %s", domain.ErrHierarchyCycle, moved.ID)
			}
			for _, child := range store.Children(parentID) {
				if err := repo.UpdateHierarchy(ctx, child.ID, level, moved.ItemType); err != nil {
					return err
				}
				if err := walk(child.ID, level+1); err != nil {
					return err
				}
			}
			return nil
		}
		return walk(moved.ID, moved.Level+1)
	})
}

// Delete elimina una categoría. Se rechaza antes de tocar el backend si tiene subcategorías
// o ítems asignados.
func (uc *CategoryUseCase) Delete(ctx context.Context, companyID, id string) error {
	store, c, err := uc.load(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !store.IsLeaf(c.ID) {
		uc.notifier.Warning(ctx, fmt.Sprintf("No se puede eliminar %s: tiene subcategorías", c.Name))
		return domain.ErrHasChildren
	}
	n, err := uc.itemRepo.CountByCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		uc.notifier.Warning(ctx, fmt.Sprintf("No se puede eliminar %s: tiene %d ítems", c.Name, n))
		return domain.ErrCategoryInUse
	}
	if err := uc.repo.Delete(ctx, c.ID); err != nil {
		uc.notifyFailure(ctx, err)
		return err
	}
	uc.notifier.Success(ctx, fmt.Sprintf("Categoría %s eliminada", c.Name))
	return nil
}

// BulkUpdateItemType endpoint masivo del backend: reescribe el tipo cacheado de subcategorías.
// Solo acepta el tipo que ya tiene la raíz de cada una (la raíz se guarda primero),
// así el endpoint no puede romper la herencia. Lista vacía = 0 actualizadas.
func (uc *CategoryUseCase) BulkUpdateItemType(ctx context.Context, companyID string, in dto.BulkItemTypeRequest) (*dto.BulkItemTypeResponse, error) {
	if len(in.CategoryIDs) == 0 {
		return &dto.BulkItemTypeResponse{UpdatedCount: 0}, nil
	}
	itemType := entity.ItemType(domcatalog.NormalizeShortCode(in.ItemType))
	store, err := uc.Snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, id := range in.CategoryIDs {
		if err := checkInheritedType(store, id, itemType); err != nil {
			return nil, err
		}
	}
	n, err := uc.repo.BulkUpdateItemType(ctx, companyID, in.CategoryIDs, itemType)
	if err != nil {
		return nil, err
	}
	return &dto.BulkItemTypeResponse{UpdatedCount: n}, nil
}

// UpdateItemType variante individual de BulkUpdateItemType (ruta de respaldo del cliente).
func (uc *CategoryUseCase) UpdateItemType(ctx context.Context, companyID, id, itemType string) error {
	t := entity.ItemType(domcatalog.NormalizeShortCode(itemType))
	store, err := uc.Snapshot(ctx, companyID)
	if err != nil {
		return err
	}
	if err := checkInheritedType(store, id, t); err != nil {
		return err
	}
	return uc.repo.UpdateItemType(ctx, companyID, id, t)
}

func checkInheritedType(store *domcatalog.CategoryStore, id string, itemType entity.ItemType) error {
	if !itemType.Valid() {
		return fmt.Errorf("%w: tipo de ítem %q", domain.ErrInvalidInput, itemType)
	}
	c, ok := store.Get(id)
	if !ok {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	if c.IsRoot() {
		return fmt.Errorf("%w: %s es raíz, su tipo se cambia editándola", domain.ErrInvalidInput, c.Name)
	}
	want, err := domcatalog.ResolveType(store, c)
	if err != nil {
		return err
	}
	if want != itemType {
		return fmt.Errorf("%w: %s hereda %s de su raíz", domain.ErrConflict, c.Name, want)
	}
	return nil
}

func (uc *CategoryUseCase) notifyFailure(ctx context.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrShortCodeExists), errors.Is(err, domain.ErrNameExists), errors.Is(err, domain.ErrDuplicate):
		uc.notifier.Warning(ctx, err.Error())
	default:
		uc.notifier.Error(ctx, "No se pudo guardar la categoría: "+err.Error())
	}
}
