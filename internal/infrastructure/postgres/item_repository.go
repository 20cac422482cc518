package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, company_id, category_id, item_code, name, description, uom, standard_cost, tax_rate, is_active, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.CompanyID, &it.CategoryID, &it.ItemCode, &it.Name, &it.Description,
		&it.UOM, &it.StandardCost, &it.TaxRate, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo ítem. El índice único (company_id, item_code) es la garantía real
// contra dos altas concurrentes con el mismo código previsto.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CompanyID, it.CategoryID, it.ItemCode, it.Name, it.Description,
		it.UOM, it.StandardCost, it.TaxRate, it.IsActive, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update actualiza datos descriptivos. No modifica item_code ni category_id.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, uom = $4, standard_cost = $5, tax_rate = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Description, it.UOM, it.StandardCost, it.TaxRate, it.IsActive, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista ítems por empresa (y categoría si se indica) con paginación.
func (r *ItemRepo) ListByCompany(ctx context.Context, companyID, categoryID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE company_id = $1 AND ($2 = '' OR category_id::text = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListCodesByCategory códigos existentes de la categoría (entrada del generador de códigos).
func (r *ItemRepo) ListCodesByCategory(ctx context.Context, companyID, categoryID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT item_code FROM items WHERE company_id = $1 AND category_id = $2`,
		companyID, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list item codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan item code: %w", err)
	}
	return codes, nil
}

// CountByCategory cantidad de ítems asignados a la categoría.
func (r *ItemRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM items WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
