package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. ParentID vacío = raíz.
// ItemType solo se toma en cuenta para raíces; las hijas heredan el de su raíz.
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=150"`
	ShortCode string `json:"short_code" validate:"required,min=2,max=4"`
	ParentID  string `json:"parent_id"`
	ItemType  string `json:"item_type"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (campos opcionales).
// ParentID "" convierte la categoría en raíz; nil la deja donde está.
// ConfirmTypeChange debe venir en true para aplicar un cambio de tipo en una raíz con subcategorías.
// SkipCascade guarda solo la raíz: el cliente propaga el tipo después con PATCH /categories/item-type.
type UpdateCategoryRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=150"`
	ShortCode         *string `json:"short_code" validate:"omitempty,min=2,max=4"`
	ParentID          *string `json:"parent_id"`
	ItemType          *string `json:"item_type"`
	IsActive          *bool   `json:"is_active"`
	ConfirmTypeChange bool    `json:"confirm_type_change"`
	SkipCascade       bool    `json:"skip_cascade"`
}

// CategoryResponse salida de una categoría con su ruta y condición de hoja.
type CategoryResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	ItemType  string    `json:"item_type"`
	Level     int       `json:"level"`
	IsActive  bool      `json:"is_active"`
	IsLeaf    bool      `json:"is_leaf"`
	Path      []string  `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse lista plana de categorías (sin paginar: el árbol se arma en el cliente).
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Total int                `json:"total"`
}

// CategoryTreeNode nodo del árbol de categorías.
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// CategorySummary datos mínimos de una subcategoría afectada por un cambio de tipo.
type CategorySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	Level     int    `json:"level"`
}

// TypeChangePlanResponse primera fase del cambio de tipo en una raíz.
type TypeChangePlanResponse struct {
	RootID               string            `json:"root_id"`
	OldType              string            `json:"old_type"`
	NewType              string            `json:"new_type"`
	RequiresConfirmation bool              `json:"requires_confirmation"`
	Descendants          []CategorySummary `json:"descendants"`
}

// TypeChangeResultResponse resultado de propagar el tipo a las subcategorías.
type TypeChangeResultResponse struct {
	Requested int      `json:"requested"`
	Updated   int      `json:"updated"`
	Failed    []string `json:"failed,omitempty"`
	Fallback  bool     `json:"fallback"`
}

// CategorySaveResponse salida de una actualización de categoría.
type CategorySaveResponse struct {
	Category   CategoryResponse          `json:"category"`
	TypeChange *TypeChangeResultResponse `json:"type_change,omitempty"`
}

// ConfirmationRequiredResponse cuerpo del 409 cuando el cambio de tipo necesita confirmación.
type ConfirmationRequiredResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Plan    TypeChangePlanResponse `json:"plan"`
}

// BulkItemTypeRequest actualización masiva del tipo cacheado de subcategorías.
type BulkItemTypeRequest struct {
	CategoryIDs []string `json:"category_ids"`
	ItemType    string   `json:"item_type" validate:"required"`
}

// BulkItemTypeResponse cantidad de categorías efectivamente actualizadas.
type BulkItemTypeResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// ItemTypeRequest actualización del tipo cacheado de una sola subcategoría.
type ItemTypeRequest struct {
	ItemType string `json:"item_type" validate:"required"`
}
