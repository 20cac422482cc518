package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ catalog.CategoryTypeWriter    = (*CategoryRepo)(nil)
)

const categoryColumns = `id, company_id, parent_id, name, short_code, item_type, level, is_active, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parentID *string
	var itemType string
	if err := row.Scan(&c.ID, &c.CompanyID, &parentID, &c.Name, &c.ShortCode, &itemType,
		&c.Level, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if parentID != nil {
		c.ParentID = *parentID
	}
	c.ItemType = entity.ItemType(itemType)
	return &c, nil
}

// mapCategoryWriteError traduce violaciones de unicidad a errores de dominio según el índice violado.
func mapCategoryWriteError(err error, op string) error {
	if isUniqueViolation(err) {
		switch constraintName(err) {
		case constraintCategoryShortCode:
			return domain.ErrShortCodeExists
		case constraintCategoryName:
			return domain.ErrNameExists
		}
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s category: %w", op, err)
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, nullIfEmpty(c.ParentID), c.Name, c.ShortCode, string(c.ItemType),
		c.Level, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapCategoryWriteError(err, "insert")
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Update actualiza nombre, código, padre, tipo, nivel y estado.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET parent_id = $2, name = $3, short_code = $4, item_type = $5, level = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.ParentID), c.Name, c.ShortCode, string(c.ItemType), c.Level, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return mapCategoryWriteError(err, "update")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista todas las categorías de la empresa (el árbol se arma en memoria).
func (r *CategoryRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE company_id = $1 ORDER BY level, name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina una categoría. Las llaves foráneas impiden borrar padres o categorías con ítems.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			if constraintName(err) == "categories_parent_id_fkey" {
				return domain.ErrHasChildren
			}
			return domain.ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// BulkUpdateItemType reescribe el tipo cacheado de varias categorías en una sola sentencia.
func (r *CategoryRepo) BulkUpdateItemType(ctx context.Context, companyID string, ids []string, itemType entity.ItemType) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET item_type = $3, updated_at = now() WHERE company_id = $1 AND id = ANY($2)`,
		companyID, ids, string(itemType),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk update category item_type: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// UpdateItemType reescribe el tipo cacheado de una categoría.
func (r *CategoryRepo) UpdateItemType(ctx context.Context, companyID, id string, itemType entity.ItemType) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET item_type = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, string(itemType),
	)
	if err != nil {
		return fmt.Errorf("update category item_type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateHierarchy reescribe nivel y tipo cacheado (movimiento de subárbol).
func (r *CategoryRepo) UpdateHierarchy(ctx context.Context, id string, level int, itemType entity.ItemType) error {
	_, err := r.q.Exec(ctx,
		`UPDATE categories SET level = $2, item_type = $3, updated_at = now() WHERE id = $1`,
		id, level, string(itemType),
	)
	if err != nil {
		return fmt.Errorf("update category hierarchy: %w", err)
	}
	return nil
}
