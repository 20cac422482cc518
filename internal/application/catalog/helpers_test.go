package catalog_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "00000000-0000-0000-0000-000000000002"

var errBackendDown = errors.New("503 service unavailable")

func cat(id, parentID, name, shortCode string, itemType entity.ItemType, level int) *entity.Category {
	now := time.Now()
	return &entity.Category{
		ID: id, CompanyID: testCompanyID, ParentID: parentID, Name: name, ShortCode: shortCode,
		ItemType: itemType, Level: level, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
}

// seedTree: A(RM) → {B → {D}, C}; E(FG) raíz sin hijos.
func seedTree() []*entity.Category {
	return []*entity.Category{
		cat("A", "", "Raw Materials", "RM", entity.ItemTypeRM, 0),
		cat("B", "A", "Trims", "TRM", entity.ItemTypeRM, 1),
		cat("C", "A", "Fabric", "FAB", entity.ItemTypeRM, 1),
		cat("D", "B", "Labels", "LBL", entity.ItemTypeRM, 2),
		cat("E", "", "Finished Goods", "FG", entity.ItemTypeFG, 0),
	}
}

// recordingNotifier guarda los mensajes emitidos por nivel.
type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	warnings []string
	errors   []string
}

func (n *recordingNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Warning(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

func (n *recordingNotifier) Error(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// flakyWriter delega en el repositorio en memoria pero puede simular caída del endpoint masivo
// y fallas individuales por ID.
type flakyWriter struct {
	repo      *memory.CategoryRepo
	bulkErr   error
	failIDs   map[string]bool
	mu        sync.Mutex
	bulkCalls int
	oneCalls  int
}

func (w *flakyWriter) BulkUpdateItemType(ctx context.Context, companyID string, ids []string, itemType entity.ItemType) (int, error) {
	w.mu.Lock()
	w.bulkCalls++
	w.mu.Unlock()
	if w.bulkErr != nil {
		return 0, w.bulkErr
	}
	return w.repo.BulkUpdateItemType(ctx, companyID, ids, itemType)
}

func (w *flakyWriter) UpdateItemType(ctx context.Context, companyID, id string, itemType entity.ItemType) error {
	w.mu.Lock()
	w.oneCalls++
	w.mu.Unlock()
	if w.failIDs[id] {
		return errBackendDown
	}
	return w.repo.UpdateItemType(ctx, companyID, id, itemType)
}

// deleteSpy cuenta las llamadas a Delete del repositorio de categorías.
type deleteSpy struct {
	*memory.CategoryRepo
	deletes int
}

func (s *deleteSpy) Delete(ctx context.Context, id string) error {
	s.deletes++
	return s.CategoryRepo.Delete(ctx, id)
}

type fixture struct {
	categories *memory.CategoryRepo
	items      *memory.ItemRepo
	writer     *flakyWriter
	notifier   *recordingNotifier
	categoryUC *catalog.CategoryUseCase
	itemUC     *catalog.ItemUseCase
}

func newFixture(seed ...*entity.Category) *fixture {
	categories := memory.NewCategoryRepository(seed...)
	items := memory.NewItemRepository()
	writer := &flakyWriter{repo: categories, failIDs: map[string]bool{}}
	notifier := &recordingNotifier{}
	applier := catalog.NewTypeChangeApplier(writer, notifier, nil, 2)
	return &fixture{
		categories: categories,
		items:      items,
		writer:     writer,
		notifier:   notifier,
		categoryUC: catalog.NewCategoryUseCase(categories, items, categories, applier, notifier),
		itemUC:     catalog.NewItemUseCase(items, categories, notifier),
	}
}
