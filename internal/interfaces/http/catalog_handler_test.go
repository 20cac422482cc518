package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/application/dto"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-catalog/internal/interfaces/http"
	"github.com/jhoicas/inventario-catalog/pkg/logger"
)

func seedCategory(id, parentID, name, shortCode string, itemType entity.ItemType, level int) *entity.Category {
	now := time.Now()
	return &entity.Category{
		ID: id, CompanyID: testCompanyID, ParentID: parentID, Name: name, ShortCode: shortCode,
		ItemType: itemType, Level: level, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
}

// buildCatalogApp arma la API completa sobre repositorios en memoria:
// A(RM) → {B → {D}, C}; E(FG).
func buildCatalogApp(t *testing.T) (*fiber.App, *memory.CategoryRepo) {
	t.Helper()
	categoryRepo := memory.NewCategoryRepository(
		seedCategory("A", "", "Raw Materials", "RM", entity.ItemTypeRM, 0),
		seedCategory("B", "A", "Trims", "TRM", entity.ItemTypeRM, 1),
		seedCategory("C", "A", "Fabric", "FAB", entity.ItemTypeRM, 1),
		seedCategory("D", "B", "Labels", "LBL", entity.ItemTypeRM, 2),
		seedCategory("E", "", "Finished Goods", "FG", entity.ItemTypeFG, 0),
	)
	itemRepo := memory.NewItemRepository()
	applier := catalog.NewTypeChangeApplier(categoryRepo, nil, logger.Nop(), 2)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC: catalog.NewCategoryUseCase(categoryRepo, itemRepo, categoryRepo, applier, nil),
		ItemUC:     catalog.NewItemUseCase(itemRepo, categoryRepo, nil),
		JWTSecret:  testJWTSecret,
	})
	return app, categoryRepo
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCategories_TreeAndLeaves(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodGet, "/api/categories/tree", apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tree := decode[[]dto.CategoryTreeNode](t, resp)
	require.Len(t, tree, 2)
	assert.Equal(t, "Finished Goods", tree[0].Name)
	assert.Equal(t, "Raw Materials", tree[1].Name)
	require.Len(t, tree[1].Children, 2)

	resp = call(t, app, http.MethodGet, "/api/categories/leaves", apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	leaves := decode[dto.CategoryListResponse](t, resp)
	ids := make([]string, 0, len(leaves.Items))
	for _, l := range leaves.Items {
		ids = append(ids, l.ID)
		assert.True(t, l.IsLeaf)
	}
	assert.ElementsMatch(t, []string{"C", "D", "E"}, ids)
}

func TestCategories_GetByID_Path(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodGet, "/api/categories/D", apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, []string{"Raw Materials", "Trims", "Labels"}, out.Path)
	assert.Equal(t, 2, out.Level)

	resp = call(t, app, http.MethodGet, "/api/categories/nope", apphttp.RoleVendedor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategories_CreateChildInheritsRootType(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodPost, "/api/categories", apphttp.RoleAdmin, dto.CreateCategoryRequest{
		Name: "Buttons", ShortCode: "btn", ParentID: "B", ItemType: "FG",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, "BTN", out.ShortCode)
	assert.Equal(t, 2, out.Level)
	assert.Equal(t, "RM", out.ItemType, "las hijas heredan el tipo de su raíz")
}

func TestCategories_CreateRejections(t *testing.T) {
	app, _ := buildCatalogApp(t)

	cases := []struct {
		name   string
		body   dto.CreateCategoryRequest
		status int
		code   string
	}{
		{"short code duplicado", dto.CreateCategoryRequest{Name: "Otra", ShortCode: "TRM", ParentID: "A"}, http.StatusConflict, "DUPLICATE_SHORT_CODE"},
		{"nombre duplicado entre hermanos", dto.CreateCategoryRequest{Name: "trims", ShortCode: "TR2", ParentID: "A"}, http.StatusConflict, "DUPLICATE_NAME"},
		{"short code inválido", dto.CreateCategoryRequest{Name: "Otra", ShortCode: "A-1", ParentID: "A"}, http.StatusBadRequest, "VALIDATION"},
		{"raíz sin tipo", dto.CreateCategoryRequest{Name: "Otra", ShortCode: "OT"}, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, "/api/categories", apphttp.RoleAdmin, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			out := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, tc.code, out.Code)
		})
	}
}

func TestCategories_UpdateParentToDescendant_Cycle(t *testing.T) {
	app, _ := buildCatalogApp(t)

	parent := "D"
	resp := call(t, app, http.MethodPut, "/api/categories/A", apphttp.RoleAdmin, dto.UpdateCategoryRequest{ParentID: &parent})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "HIERARCHY_CYCLE", out.Code)
}

func TestCategories_RootTypeChange_TwoPhase(t *testing.T) {
	app, repo := buildCatalogApp(t)
	fg := "FG"

	resp := call(t, app, http.MethodPut, "/api/categories/A", apphttp.RoleAdmin, dto.UpdateCategoryRequest{ItemType: &fg})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	pending := decode[dto.ConfirmationRequiredResponse](t, resp)
	assert.Equal(t, "CONFIRMATION_REQUIRED", pending.Code)
	assert.True(t, pending.Plan.RequiresConfirmation)
	assert.Len(t, pending.Plan.Descendants, 3)

	// Nada se persistió en la primera fase.
	a, err := repo.GetByID(t.Context(), "A")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemTypeRM, a.ItemType)

	resp = call(t, app, http.MethodPut, "/api/categories/A", apphttp.RoleAdmin, dto.UpdateCategoryRequest{ItemType: &fg, ConfirmTypeChange: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decode[dto.CategorySaveResponse](t, resp)
	require.NotNil(t, saved.TypeChange)
	assert.Equal(t, 3, saved.TypeChange.Updated)
	assert.Equal(t, "FG", saved.Category.ItemType)

	resp = call(t, app, http.MethodGet, "/api/categories/D", apphttp.RoleVendedor, nil)
	d := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, "FG", d.ItemType)
}

func TestCategories_ItemTypeOnePerRequest_KeepsIDsAcrossRequests(t *testing.T) {
	app, repo := buildCatalogApp(t)
	fg := "FG"

	resp := call(t, app, http.MethodPut, "/api/categories/A", apphttp.RoleAdmin, dto.UpdateCategoryRequest{
		ItemType: &fg, ConfirmTypeChange: true, SkipCascade: true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, id := range []string{"B", "C", "D"} {
		resp = call(t, app, http.MethodPatch, "/api/categories/"+id+"/item-type", apphttp.RoleAdmin, dto.ItemTypeRequest{ItemType: "FG"})
		require.Equal(t, http.StatusNoContent, resp.StatusCode, id)
	}
	// Otra petición reutiliza el buffer de la anterior.
	resp = call(t, app, http.MethodGet, "/api/categories/B", apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, id := range []string{"A", "B", "C", "D"} {
		c, err := repo.GetByID(t.Context(), id)
		require.NoError(t, err)
		require.NotNil(t, c, id)
		assert.Equal(t, entity.ItemTypeFG, c.ItemType, id)
	}
	list, err := repo.ListByCompany(t.Context(), testCompanyID)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestCategories_TypeChangePlan(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodGet, "/api/categories/E/type-change-plan?item_type=RM", apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decode[dto.TypeChangePlanResponse](t, resp)
	assert.False(t, plan.RequiresConfirmation)

	resp = call(t, app, http.MethodGet, "/api/categories/B/type-change-plan?item_type=FG", apphttp.RoleVendedor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_ROOT", out.Code)
}

func TestCategories_DeleteWithChildren(t *testing.T) {
	app, repo := buildCatalogApp(t)

	resp := call(t, app, http.MethodDelete, "/api/categories/A", apphttp.RoleAdmin, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "HAS_CHILDREN", out.Code)

	a, err := repo.GetByID(t.Context(), "A")
	require.NoError(t, err)
	assert.NotNil(t, a)

	resp = call(t, app, http.MethodDelete, "/api/categories/C", apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCategories_BulkItemType(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodPatch, "/api/categories/item-type", apphttp.RoleAdmin, dto.BulkItemTypeRequest{CategoryIDs: []string{}, ItemType: "FG"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[dto.BulkItemTypeResponse](t, resp).UpdatedCount)

	// El endpoint no puede romper la herencia: B hereda RM de A.
	resp = call(t, app, http.MethodPatch, "/api/categories/item-type", apphttp.RoleAdmin, dto.BulkItemTypeRequest{CategoryIDs: []string{"B"}, ItemType: "FG"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, "/api/categories/item-type", apphttp.RoleAdmin, dto.BulkItemTypeRequest{CategoryIDs: []string{"B", "D"}, ItemType: "RM"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.BulkItemTypeResponse](t, resp).UpdatedCount)
}

func TestCategories_VendedorCannotWrite(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodPost, "/api/categories", apphttp.RoleVendedor, dto.CreateCategoryRequest{Name: "X", ShortCode: "XX", ItemType: "RM"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestItems_NextCodeAndCreate(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodGet, "/api/items/next-code?category_id=D", apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	next := decode[dto.NextCodeResponse](t, resp)
	assert.Equal(t, "LBL-0001", next.ItemCode)

	resp = call(t, app, http.MethodPost, "/api/items", apphttp.RoleBodeguero, dto.CreateItemRequest{
		CategoryID: "D", ItemCode: next.ItemCode, Name: "Etiqueta tejida",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "LBL-0001", item.ItemCode)
	assert.Equal(t, catalog.DefaultUOM, item.UOM)

	// La misma vista previa reutilizada choca con el índice único.
	resp = call(t, app, http.MethodPost, "/api/items", apphttp.RoleBodeguero, dto.CreateItemRequest{
		CategoryID: "D", ItemCode: next.ItemCode, Name: "Otra etiqueta",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CODE_TAKEN", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodGet, "/api/items/next-code?category_id=D", apphttp.RoleVendedor, nil)
	assert.Equal(t, "LBL-0002", decode[dto.NextCodeResponse](t, resp).ItemCode)

	// Con ítems asignados la categoría no se puede borrar.
	resp = call(t, app, http.MethodDelete, "/api/categories/D", apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CATEGORY_IN_USE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItems_CreateUnderNonLeaf(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodPost, "/api/items", apphttp.RoleAdmin, dto.CreateItemRequest{CategoryID: "B", Name: "Cinta"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NOT_LEAF", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItems_UpdateKeepsCode(t *testing.T) {
	app, _ := buildCatalogApp(t)

	resp := call(t, app, http.MethodPost, "/api/items", apphttp.RoleAdmin, dto.CreateItemRequest{CategoryID: "C", Name: "Denim"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "FAB-0001", created.ItemCode)

	name := "Denim 12oz"
	resp = call(t, app, http.MethodPut, "/api/items/"+created.ID, apphttp.RoleAdmin, dto.UpdateItemRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "Denim 12oz", updated.Name)
	assert.Equal(t, "FAB-0001", updated.ItemCode)

	resp = call(t, app, http.MethodGet, "/api/items?category_id=C", apphttp.RoleVendedor, nil)
	list := decode[dto.ItemListResponse](t, resp)
	assert.Len(t, list.Items, 1)

	resp = call(t, app, http.MethodDelete, "/api/items/"+created.ID, apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = call(t, app, http.MethodGet, "/api/items/"+created.ID, apphttp.RoleVendedor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
