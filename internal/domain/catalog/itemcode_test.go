package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

func TestNextCode_MaximoMasUno(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	code, err := catalog.NextCode(store, "B", []string{"TRM-0001", "TRM-0003"})
	require.NoError(t, err)
	assert.Equal(t, "TRM-0004", code, "debe usar máximo+1, no cantidad+1")
}

func TestNextCode_SinCodigosExistentes(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	code, err := catalog.NextCode(store, "D", nil)
	require.NoError(t, err)
	assert.Equal(t, "LBL-0001", code)
}

func TestNextCode_IgnoraCodigosDeOtroPrefijo(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	code, err := catalog.NextCode(store, "D", []string{"LBLX-0042", "TRM-0099", "LBL-12", "LBL-0007", "lbl-0050"})
	require.NoError(t, err)
	assert.Equal(t, "LBL-0008", code)
}

func TestNextCode_MasDeCuatroDigitos(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	code, err := catalog.NextCode(store, "D", []string{"LBL-9999", "LBL-10000"})
	require.NoError(t, err)
	assert.Equal(t, "LBL-10001", code)
}

func TestNextCode_CategoriaDesconocida(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	_, err := catalog.NextCode(store, "no-existe", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNextCode_FallbackCodigoHeredado(t *testing.T) {
	legacy := cat("L", "", "Cinta elástica", "", entity.ItemTypeRM, 0)
	store := catalog.NewCategoryStore([]*entity.Category{legacy})

	code, err := catalog.NextCode(store, "L", []string{"CINT-0002"})
	require.NoError(t, err)
	assert.Equal(t, "CINT-0003", code)
}

func TestFormatCodeYMatches(t *testing.T) {
	assert.Equal(t, "FAB-0012", catalog.FormatCode("FAB", 12))
	assert.True(t, catalog.MatchesCategory("FAB", "FAB-0012"))
	assert.False(t, catalog.MatchesCategory("FAB", "FAB-12"))
	assert.False(t, catalog.MatchesCategory("FA", "FAB-0012"))
}

func TestMatchesCategory_SoloCanonico(t *testing.T) {
	assert.True(t, catalog.MatchesCategory("LBL", "LBL-0001"))
	assert.True(t, catalog.MatchesCategory("LBL", "LBL-10000"))
	assert.False(t, catalog.MatchesCategory("LBL", "LBL-00001"), "ceros de más repetirían el secuencial 1")
	assert.False(t, catalog.MatchesCategory("LBL", "LBL-01000"))
	assert.False(t, catalog.MatchesCategory("LBL", "LBL-0000"))
}

func TestNextCode_IgnoraCodigosNoCanonicos(t *testing.T) {
	store := catalog.NewCategoryStore(sampleTree())

	code, err := catalog.NextCode(store, "D", []string{"LBL-0001", "LBL-00042"})
	require.NoError(t, err)
	assert.Equal(t, "LBL-0002", code)
}
