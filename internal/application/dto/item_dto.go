package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem. ItemCode es opcional: si viene, debe ser la vista
// previa obtenida de /items/next-code y el backend la revalida al insertar.
type CreateItemRequest struct {
	CategoryID   string          `json:"category_id" validate:"required"`
	ItemCode     string          `json:"item_code"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	UOM          string          `json:"uom"`
	StandardCost decimal.Decimal `json:"standard_cost"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
}

// UpdateItemRequest entrada para actualizar un ítem (sin código ni categoría: son inmutables).
type UpdateItemRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	UOM          *string          `json:"uom"`
	StandardCost *decimal.Decimal `json:"standard_cost"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	IsActive     *bool            `json:"is_active"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	CategoryID   string          `json:"category_id"`
	ItemCode     string          `json:"item_code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UOM          string          `json:"uom"`
	StandardCost decimal.Decimal `json:"standard_cost"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// NextCodeResponse vista previa del siguiente código de ítem (no es una reserva).
type NextCodeResponse struct {
	CategoryID string `json:"category_id"`
	ItemCode   string `json:"item_code"`
}
