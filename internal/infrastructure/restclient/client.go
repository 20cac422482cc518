// Package restclient cliente REST del backend de catálogo, usado por catalogctl.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/application/dto"
	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client puede propagar tipos (masivo + individual).
var _ catalog.CategoryTypeWriter = (*Client)(nil)

const maxResponseBytes = 4 << 20

// Client adaptador HTTP contra /api del servicio de catálogo.
// No reintenta: los errores de red o del servidor se devuelven envueltos.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New construye el cliente. baseURL sin la barra final (ej. http://localhost:8080).
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError respuesta de error del servidor. Unwrap devuelve el error de dominio del código.
type APIError struct {
	Status  int
	Code    string
	Message string
	Plan    *dto.TypeChangePlanResponse // solo en CONFIRMATION_REQUIRED
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API %d %s: %s", e.Status, e.Code, e.Message)
}

var codeErrors = map[string]error{
	"NOT_FOUND":             domain.ErrNotFound,
	"VALIDATION":            domain.ErrInvalidInput,
	"INVALID_BODY":          domain.ErrInvalidInput,
	"DUPLICATE_SHORT_CODE":  domain.ErrShortCodeExists,
	"DUPLICATE_NAME":        domain.ErrNameExists,
	"HIERARCHY_CYCLE":       domain.ErrHierarchyCycle,
	"NOT_LEAF":              domain.ErrNotLeafCategory,
	"NOT_ROOT":              domain.ErrNotRootCategory,
	"CODE_TAKEN":            domain.ErrItemCodeTaken,
	"HAS_CHILDREN":          domain.ErrHasChildren,
	"CATEGORY_IN_USE":       domain.ErrCategoryInUse,
	"CONFIRMATION_REQUIRED": domain.ErrConfirmationRequired,
	"DUPLICATE":             domain.ErrDuplicate,
	"CONFLICT":              domain.ErrConflict,
	"UNAUTHORIZED":          domain.ErrUnauthorized,
	"MISSING_TOKEN":         domain.ErrUnauthorized,
	"INVALID_TOKEN":         domain.ErrUnauthorized,
	"MISSING_ROLE":          domain.ErrUnauthorized,
	"FORBIDDEN":             domain.ErrForbidden,
}

func (e *APIError) Unwrap() error { return codeErrors[e.Code] }

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("restclient: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("restclient: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("restclient: %s %s: timeout o cancelación: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("restclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("restclient: leer respuesta: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("restclient: parsear respuesta de %s: %w", path, err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var body dto.ConfirmationRequiredResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Code == "" {
		return &APIError{Status: status, Code: "HTTP_ERROR", Message: strings.TrimSpace(string(raw))}
	}
	apiErr := &APIError{Status: status, Code: body.Code, Message: body.Message}
	if body.Code == "CONFIRMATION_REQUIRED" {
		apiErr.Plan = &body.Plan
	}
	return apiErr
}

// toEntity mapea la respuesta del backend a la categoría normalizada del dominio.
func toEntity(r dto.CategoryResponse) *entity.Category {
	return &entity.Category{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		ParentID:  r.ParentID,
		Name:      r.Name,
		ShortCode: r.ShortCode,
		ItemType:  entity.ItemType(r.ItemType),
		Level:     r.Level,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ListCategories todas las categorías de la empresa del token.
func (c *Client) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var out dto.CategoryListResponse
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	list := make([]*entity.Category, 0, len(out.Items))
	for _, r := range out.Items {
		list = append(list, toEntity(r))
	}
	return list, nil
}

// GetCategory una categoría con ruta y condición de hoja.
func (c *Client) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory guarda cambios de una categoría. Un 409 CONFIRMATION_REQUIRED llega como *APIError con Plan.
func (c *Client) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategorySaveResponse, error) {
	var out dto.CategorySaveResponse
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory elimina una categoría.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

// NextCode vista previa del siguiente código de ítem de una categoría hoja.
func (c *Client) NextCode(ctx context.Context, categoryID string) (string, error) {
	var out dto.NextCodeResponse
	path := "/api/items/next-code?category_id=" + url.QueryEscape(categoryID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.ItemCode, nil
}

// BulkUpdateItemType PATCH /api/categories/item-type. companyID lo define el token.
func (c *Client) BulkUpdateItemType(ctx context.Context, _ string, ids []string, itemType entity.ItemType) (int, error) {
	var out dto.BulkItemTypeResponse
	in := dto.BulkItemTypeRequest{CategoryIDs: ids, ItemType: string(itemType)}
	if err := c.do(ctx, http.MethodPatch, "/api/categories/item-type", in, &out); err != nil {
		return 0, err
	}
	return out.UpdatedCount, nil
}

// UpdateItemType PATCH /api/categories/:id/item-type (ruta de respaldo).
func (c *Client) UpdateItemType(ctx context.Context, _ string, id string, itemType entity.ItemType) error {
	in := dto.ItemTypeRequest{ItemType: string(itemType)}
	return c.do(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(id)+"/item-type", in, nil)
}
