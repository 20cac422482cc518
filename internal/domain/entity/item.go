package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem del maestro de inventario asignado a una categoría hoja.
// ItemCode se genera una sola vez al crear el ítem y es inmutable.
type Item struct {
	ID           string
	CompanyID    string
	CategoryID   string
	ItemCode     string // {SHORT_CODE}-{NNNN}, único por empresa
	Name         string
	Description  string
	UOM          string
	StandardCost decimal.Decimal
	TaxRate      decimal.Decimal // GST: 0, 5, 12, 18, 28
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
