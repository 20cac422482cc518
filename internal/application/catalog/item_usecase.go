package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-catalog/internal/application/dto"
	"github.com/jhoicas/inventario-catalog/internal/domain"
	domcatalog "github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
)

// DefaultUOM unidad de medida por defecto (números).
const DefaultUOM = "NOS"

// Tasas GST permitidas (porcentaje).
var allowedTaxRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

func validTaxRate(rate decimal.Decimal) bool {
	for _, r := range allowedTaxRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// ItemUseCase casos de uso del maestro de ítems: alta con código derivado de la categoría hoja.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	notifier     Notifier
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, categoryRepo repository.CategoryRepository, notifier Notifier) *ItemUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo, notifier: notifier}
}

// leafCategory carga la instantánea y exige que la categoría exista y sea hoja.
func (uc *ItemUseCase) leafCategory(ctx context.Context, companyID, categoryID string) (*domcatalog.CategoryStore, *entity.Category, error) {
	list, err := uc.categoryRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	store := domcatalog.NewCategoryStore(list)
	c, ok := store.Get(categoryID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
	}
	if !store.IsLeaf(c.ID) {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrNotLeafCategory, c.Name)
	}
	return store, c, nil
}

// PreviewCode calcula el siguiente código de la categoría. Es solo una vista previa:
// dos llamadores concurrentes pueden obtener el mismo valor.
func (uc *ItemUseCase) PreviewCode(ctx context.Context, companyID, categoryID string) (*dto.NextCodeResponse, error) {
	store, c, err := uc.leafCategory(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}
	codes, err := uc.repo.ListCodesByCategory(ctx, companyID, c.ID)
	if err != nil {
		return nil, err
	}
	code, err := domcatalog.NextCode(store, c.ID, codes)
	if err != nil {
		return nil, err
	}
	return &dto.NextCodeResponse{CategoryID: c.ID, ItemCode: code}, nil
}

// Create crea un ítem en una categoría hoja. Si el código (previsto o derivado) ya fue tomado
// devuelve domain.ErrItemCodeTaken; no reintenta: el llamador vuelve a pedir la vista previa.
func (uc *ItemUseCase) Create(ctx context.Context, companyID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if domcatalog.NormalizeName(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if !validTaxRate(in.TaxRate) {
		return nil, fmt.Errorf("%w: tasa GST %s no permitida", domain.ErrInvalidInput, in.TaxRate.String())
	}
	if in.StandardCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo estándar no puede ser negativo", domain.ErrInvalidInput)
	}
	store, c, err := uc.leafCategory(ctx, companyID, in.CategoryID)
	if err != nil {
		uc.notifier.Warning(ctx, err.Error())
		return nil, err
	}

	code := in.ItemCode
	if code != "" {
		if !domcatalog.MatchesCategory(domcatalog.ShortCodeFor(c), code) {
			return nil, fmt.Errorf("%w: el código %s no corresponde a la categoría %s", domain.ErrInvalidInput, code, c.Name)
		}
	} else {
		codes, err := uc.repo.ListCodesByCategory(ctx, companyID, c.ID)
		if err != nil {
			return nil, err
		}
		if code, err = domcatalog.NextCode(store, c.ID, codes); err != nil {
			return nil, err
		}
	}

	uom := in.UOM
	if uom == "" {
		uom = DefaultUOM
	}
	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CategoryID:   c.ID,
		ItemCode:     code,
		Name:         domcatalog.NormalizeName(in.Name),
		Description:  in.Description,
		UOM:          uom,
		StandardCost: in.StandardCost,
		TaxRate:      in.TaxRate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			uc.notifier.Warning(ctx, fmt.Sprintf("El código %s ya fue tomado, genere uno nuevo y reintente", code))
			return nil, fmt.Errorf("%w: %s", domain.ErrItemCodeTaken, code)
		}
		uc.notifier.Error(ctx, "No se pudo crear el ítem: "+err.Error())
		return nil, err
	}
	uc.notifier.Success(ctx, fmt.Sprintf("Ítem %s creado", item.ItemCode))
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem de la empresa. Devuelve nil si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza datos descriptivos del ítem. Código y categoría son inmutables.
func (uc *ItemUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, nil
	}
	if in.Name != nil {
		name := domcatalog.NormalizeName(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.UOM != nil && *in.UOM != "" {
		item.UOM = *in.UOM
	}
	if in.StandardCost != nil {
		if in.StandardCost.IsNegative() {
			return nil, fmt.Errorf("%w: el costo estándar no puede ser negativo", domain.ErrInvalidInput)
		}
		item.StandardCost = *in.StandardCost
	}
	if in.TaxRate != nil {
		if !validTaxRate(*in.TaxRate) {
			return nil, fmt.Errorf("%w: tasa GST %s no permitida", domain.ErrInvalidInput, in.TaxRate.String())
		}
		item.TaxRate = *in.TaxRate
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista ítems de la empresa, opcionalmente filtrados por categoría.
func (uc *ItemUseCase) List(ctx context.Context, companyID, categoryID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un ítem de la empresa.
func (uc *ItemUseCase) Delete(ctx context.Context, companyID, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil || item.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
