package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *catalog.CategoryUseCase
	ItemUC     *catalog.ItemUseCase
	JWTSecret  string
	JWTIssuer  string
}

// Router registra las rutas de la API. Lectura para cualquier rol; escritura solo admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(jwt.Verifier{Secret: deps.JWTSecret, Issuer: deps.JWTIssuer}))
	write := RequireRole(RoleAdmin, RoleBodeguero)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/leaves", categoryHandler.Leaves)
	categories.Patch("/item-type", write, categoryHandler.BulkUpdateItemType)
	categories.Post("/", write, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", write, categoryHandler.Update)
	categories.Delete("/:id", write, categoryHandler.Delete)
	categories.Get("/:id/type-change-plan", categoryHandler.TypeChangePlan)
	categories.Patch("/:id/item-type", write, categoryHandler.UpdateItemType)

	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/next-code", itemHandler.NextCode)
	items.Get("/", itemHandler.List)
	items.Post("/", write, itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", write, itemHandler.Update)
	items.Delete("/:id", write, itemHandler.Delete)
}
