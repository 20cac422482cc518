package entity

import "time"

// Category representa una categoría de ítems dentro del árbol jerárquico de la empresa.
// ItemType solo es autoritativo en las raíces; en las demás es una copia cacheada del tipo de su raíz.
type Category struct {
	ID        string
	CompanyID string
	ParentID  string // vacío si es raíz
	Name      string
	ShortCode string // 2-4 caracteres en mayúsculas, único por empresa; prefijo de los códigos de ítem
	ItemType  ItemType
	Level     int // 0 para raíces
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot informa si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}
