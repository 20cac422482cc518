package catalog_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "00000000-0000-0000-0000-000000000002"

func cat(id, parentID, name, shortCode string, itemType entity.ItemType, level int) *entity.Category {
	return &entity.Category{
		ID:        id,
		CompanyID: testCompanyID,
		ParentID:  parentID,
		Name:      name,
		ShortCode: shortCode,
		ItemType:  itemType,
		Level:     level,
		IsActive:  true,
	}
}

// sampleTree: A(RM) → {B → {D}, C}; E(FG) raíz sin hijos.
func sampleTree() []*entity.Category {
	return []*entity.Category{
		cat("A", "", "Raw Materials", "RM", entity.ItemTypeRM, 0),
		cat("B", "A", "Trims", "TRM", entity.ItemTypeRM, 1),
		cat("C", "A", "Fabric", "FAB", entity.ItemTypeRM, 1),
		cat("D", "B", "Labels", "LBL", entity.ItemTypeRM, 2),
		cat("E", "", "Finished Goods", "FG", entity.ItemTypeFG, 0),
	}
}

// chain construye una cadena lineal de profundidad depth (raíz = nivel 0).
func chain(depth int, rootType entity.ItemType) []*entity.Category {
	list := []*entity.Category{cat("n0", "", "n0", "N0", rootType, 0)}
	for i := 1; i <= depth; i++ {
		// Los niveles intermedios llevan un tipo cacheado distinto a propósito.
		list = append(list, cat(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i-1), fmt.Sprintf("n%d", i), fmt.Sprintf("N%d", i), entity.ItemTypeGeneral, i))
	}
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// Path
// ──────────────────────────────────────────────────────────────────────────────

func TestPath_RaizAHoja(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	path, err := store.Path("D")
	require.NoError(t, err)
	assert.Equal(t, []string{"Raw Materials", "Trims", "Labels"}, path, "la ruta debe ir de la raíz a la categoría")

	rootPath, err := store.Path("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Raw Materials"}, rootPath)
}

func TestPath_IDDesconocido_RutaVacia(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	path, err := store.Path("no-existe")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestPath_CicloDetectado(t *testing.T) {
	// X → Y → X: ninguna llega a un padre nulo.
	store := catalog.NewCategoryStore([]*entity.Category{
		cat("X", "Y", "X", "XX", entity.ItemTypeRM, 1),
		cat("Y", "X", "Y", "YY", entity.ItemTypeRM, 1),
	})

	_, err := store.Path("X")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHierarchyCycle)

	_, err = store.Root("Y")
	assert.ErrorIs(t, err, domain.ErrHierarchyCycle)
}

func TestPath_PadreInexistente(t *testing.T) {
	store := catalog.NewCategoryStore([]*entity.Category{
		cat("X", "fantasma", "X", "XX", entity.ItemTypeRM, 1),
	})

	_, err := store.Path("X")
	assert.ErrorIs(t, err, domain.ErrHierarchyCycle)
}

func TestPath_ProfundidadMaximaTermina(t *testing.T) {
	store := catalog.NewCategoryStore(chain(catalog.MaxDepth+5, entity.ItemTypeRM))

	_, err := store.Path(fmt.Sprintf("n%d", catalog.MaxDepth+5))
	assert.ErrorIs(t, err, domain.ErrHierarchyCycle, "superar la profundidad máxima es un error de integridad")

	path, err := store.Path(fmt.Sprintf("n%d", catalog.MaxDepth))
	require.NoError(t, err)
	assert.Len(t, path, catalog.MaxDepth+1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hojas, hijos y descendientes
// ──────────────────────────────────────────────────────────────────────────────

func TestIsLeaf_EquivaleASinHijos(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	for _, c := range store.All() {
		assert.Equal(t, len(store.Children(c.ID)) == 0, store.IsLeaf(c.ID), "categoría %s", c.ID)
	}
	assert.False(t, store.IsLeaf("A"))
	assert.False(t, store.IsLeaf("B"))
	assert.True(t, store.IsLeaf("C"))
	assert.True(t, store.IsLeaf("D"))
	assert.True(t, store.IsLeaf("E"))
}

func TestChildren_OrdenadosPorNombre(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	children := store.Children("A")
	require.Len(t, children, 2)
	assert.Equal(t, "Fabric", children[0].Name)
	assert.Equal(t, "Trims", children[1].Name)
}

func TestDescendants_Transitivos(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	ids := idsOf(store.Descendants("A"))
	assert.ElementsMatch(t, []string{"B", "C", "D"}, ids)
	assert.Empty(t, store.Descendants("E"))
	assert.Empty(t, store.Descendants("D"))
}

func TestDescendants_CicloNoCuelga(t *testing.T) {
	store := catalog.NewCategoryStore([]*entity.Category{
		cat("X", "Y", "X", "XX", entity.ItemTypeRM, 1),
		cat("Y", "X", "Y", "YY", entity.ItemTypeRM, 1),
	})

	assert.ElementsMatch(t, []string{"Y"}, idsOf(store.Descendants("X")))
}

func TestLeaves(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())
	assert.ElementsMatch(t, []string{"C", "D", "E"}, idsOf(store.Leaves()))
}

func TestNextLevel(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	lvl, err := store.NextLevel("")
	require.NoError(t, err)
	assert.Equal(t, 0, lvl)

	lvl, err = store.NextLevel("B")
	require.NoError(t, err)
	assert.Equal(t, 2, lvl)

	_, err = store.NextLevel("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTree_Anidado(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	tree := store.Tree()
	require.Len(t, tree, 2)
	assert.Equal(t, "E", tree[0].Category.ID, "Finished Goods ordena antes que Raw Materials")
	rm := tree[1]
	require.Len(t, rm.Children, 2)
	assert.Equal(t, "C", rm.Children[0].Category.ID)
	require.Len(t, rm.Children[1].Children, 1)
	assert.Equal(t, "D", rm.Children[1].Children[0].Category.ID)
}

func TestIsAncestor(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	assert.True(t, store.IsAncestor("A", "D"))
	assert.True(t, store.IsAncestor("D", "D"))
	assert.False(t, store.IsAncestor("C", "D"))
	assert.False(t, store.IsAncestor("E", "D"))
}

func idsOf(list []*entity.Category) []string {
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids
}
