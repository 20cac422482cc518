package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	domcatalog "github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/memory"
)

const companyID = "company-1"

func category(id, parentID, name, shortCode string) *entity.Category {
	c := &entity.Category{ID: id, CompanyID: companyID, ParentID: parentID, Name: name, ShortCode: shortCode}
	if parentID == "" {
		c.ItemType = entity.ItemTypeRM
	}
	return c
}

func TestCategoryRepo_NombresComoLaValidacion(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository(
		category("A", "", "Raw Materials", "RM"),
		category("B", "A", "Straße", "STR"),
	)
	dup := category("X", "A", "STRASSE", "STX")

	list, err := repo.ListByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.ErrorIs(t, domcatalog.ValidateCategory(domcatalog.NewCategoryStore(list), dup), domain.ErrNameExists)
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrNameExists)

	require.NoError(t, repo.Create(ctx, category("Y", "", "STRASSE", "STY")), "otro padre")
}
