package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Validación de categorías
	ErrShortCodeExists = errors.New("el código corto de la categoría ya existe")
	ErrNameExists      = errors.New("ya existe una categoría con ese nombre bajo el mismo padre")

	// Errores estructurales del árbol
	ErrHasChildren     = errors.New("la categoría tiene subcategorías")
	ErrNotLeafCategory = errors.New("solo se pueden asignar ítems a categorías hoja")
	ErrHierarchyCycle  = errors.New("jerarquía de categorías inconsistente")
	ErrNotRootCategory = errors.New("el tipo de ítem solo se define en categorías raíz")
	ErrCategoryInUse   = errors.New("la categoría tiene ítems asignados")

	// Conflictos detectados al persistir
	ErrItemCodeTaken = errors.New("el código de ítem ya fue tomado, reintente")

	// Flujo de confirmación en dos fases
	ErrConfirmationRequired = errors.New("el cambio de tipo afecta subcategorías y requiere confirmación")
)
