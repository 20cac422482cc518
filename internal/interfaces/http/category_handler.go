package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/application/dto"
)

// CategoryHandler maneja las peticiones HTTP del árbol de categorías (protegido).
type CategoryHandler struct {
	uc *catalog.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Description  Lista plana de todas las categorías de la empresa con ruta y condición de hoja.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	out, err := h.uc.List(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Tree godoc
// @Summary      Árbol de categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryTreeNode
// @Router       /api/categories/tree [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	out, err := h.uc.Tree(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Leaves godoc
// @Summary      Categorías hoja
// @Description  Únicos destinos válidos al crear ítems.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories/leaves [get]
func (h *CategoryHandler) Leaves(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	out, err := h.uc.Leaves(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Description  parent_id vacío crea una raíz (item_type obligatorio). Las hijas heredan el tipo de su raíz.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.ShortCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y short_code son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Si una raíz con subcategorías cambia de tipo responde 409 CONFIRMATION_REQUIRED con el plan;
// @Description  reenviar con confirm_type_change=true para aplicarlo.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategorySaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ConfirmationRequiredResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Rechazada con 409 si tiene subcategorías o ítems asignados.
// @Tags         categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TypeChangePlan godoc
// @Summary      Plan de cambio de tipo
// @Description  Primera fase: subcategorías que cambiarían si la raíz pasa a item_type. No modifica nada.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true  "ID de la categoría raíz"
// @Param        item_type  query  string  true  "Nuevo tipo"
// @Success      200  {object}  dto.TypeChangePlanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/type-change-plan [get]
func (h *CategoryHandler) TypeChangePlan(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	itemType := c.Query("item_type")
	if itemType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_type es requerido"})
	}
	out, err := h.uc.PlanTypeChange(c.UserContext(), companyID, c.Params("id"), itemType)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkUpdateItemType godoc
// @Summary      Actualización masiva del tipo de subcategorías
// @Description  Solo acepta el tipo ya resuelto desde la raíz de cada categoría. Lista vacía = 0.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkItemTypeRequest  true  "IDs y tipo"
// @Success      200   {object}  dto.BulkItemTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/item-type [patch]
func (h *CategoryHandler) BulkUpdateItemType(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var in dto.BulkItemTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.BulkUpdateItemType(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateItemType godoc
// @Summary      Actualizar el tipo de una subcategoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Param        id    path  string               true  "ID de la categoría"
// @Param        body  body  dto.ItemTypeRequest  true  "Tipo"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/item-type [patch]
func (h *CategoryHandler) UpdateItemType(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var in dto.ItemTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateItemType(c.UserContext(), companyID, c.Params("id"), in.ItemType); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
