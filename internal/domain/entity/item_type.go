package entity

import "regexp"

// ItemType clasifica los ítems (materia prima, producto terminado, empaque, ...).
type ItemType string

const (
	ItemTypeRM         ItemType = "RM"
	ItemTypeFG         ItemType = "FG"
	ItemTypePacking    ItemType = "PACKING"
	ItemTypeConsumable ItemType = "CONSUMABLE"
	ItemTypeGeneral    ItemType = "GENERAL"
	ItemTypeAccessory  ItemType = "ACCESSORY"
)

// KnownItemTypes tipos predefinidos; la empresa puede extenderlos con valores propios.
var KnownItemTypes = []ItemType{
	ItemTypeRM, ItemTypeFG, ItemTypePacking, ItemTypeConsumable, ItemTypeGeneral, ItemTypeAccessory,
}

var itemTypePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,29}$`)

// Valid informa si el tipo es un token en mayúsculas aceptable (predefinido o extendido).
func (t ItemType) Valid() bool {
	return itemTypePattern.MatchString(string(t))
}
