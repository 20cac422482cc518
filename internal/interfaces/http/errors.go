package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/application/dto"
	"github.com/jhoicas/inventario-catalog/internal/domain"
)

// errorStatus traduce errores de dominio a status HTTP y código de error de la API.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrShortCodeExists):
		return fiber.StatusConflict, "DUPLICATE_SHORT_CODE"
	case errors.Is(err, domain.ErrNameExists):
		return fiber.StatusConflict, "DUPLICATE_NAME"
	case errors.Is(err, domain.ErrHierarchyCycle):
		return fiber.StatusBadRequest, "HIERARCHY_CYCLE"
	case errors.Is(err, domain.ErrNotLeafCategory):
		return fiber.StatusBadRequest, "NOT_LEAF"
	case errors.Is(err, domain.ErrNotRootCategory):
		return fiber.StatusBadRequest, "NOT_ROOT"
	case errors.Is(err, domain.ErrItemCodeTaken):
		return fiber.StatusConflict, "CODE_TAKEN"
	case errors.Is(err, domain.ErrHasChildren):
		return fiber.StatusConflict, "HAS_CHILDREN"
	case errors.Is(err, domain.ErrCategoryInUse):
		return fiber.StatusConflict, "CATEGORY_IN_USE"
	case errors.Is(err, domain.ErrConfirmationRequired):
		return fiber.StatusConflict, "CONFIRMATION_REQUIRED"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con dto.ErrorResponse. El 409 de confirmación lleva además el plan.
func writeError(c *fiber.Ctx, err error) error {
	var confirm *catalog.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		return c.Status(fiber.StatusConflict).JSON(dto.ConfirmationRequiredResponse{
			Code:    "CONFIRMATION_REQUIRED",
			Message: confirm.Error(),
			Plan:    confirm.Plan,
		})
	}
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func requireCompany(c *fiber.Ctx) (string, error) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return "", c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	return companyID, nil
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
