package catalog

import (
	"github.com/jhoicas/inventario-catalog/internal/application/dto"
	domcatalog "github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

func toCategoryResponse(store *domcatalog.CategoryStore, c *entity.Category) dto.CategoryResponse {
	out := dto.CategoryResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		ShortCode: c.ShortCode,
		ItemType:  string(c.ItemType),
		Level:     c.Level,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if store != nil {
		out.IsLeaf = store.IsLeaf(c.ID)
		// Una ruta rota (ciclo) no impide listar: se omite la ruta.
		if path, err := store.Path(c.ID); err == nil {
			out.Path = path
		}
	}
	return out
}

func toTreeNodes(store *domcatalog.CategoryStore, nodes []*domcatalog.TreeNode) []dto.CategoryTreeNode {
	out := make([]dto.CategoryTreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryTreeNode{
			CategoryResponse: toCategoryResponse(store, n.Category),
			Children:         toTreeNodes(store, n.Children),
		})
	}
	return out
}

func toPlanResponse(plan *domcatalog.TypeChangePlan) dto.TypeChangePlanResponse {
	out := dto.TypeChangePlanResponse{
		RootID:               plan.RootID,
		OldType:              string(plan.OldType),
		NewType:              string(plan.NewType),
		RequiresConfirmation: plan.RequiresConfirmation(),
		Descendants:          make([]dto.CategorySummary, 0, len(plan.Descendants)),
	}
	for _, d := range plan.Descendants {
		out.Descendants = append(out.Descendants, dto.CategorySummary{
			ID:        d.ID,
			Name:      d.Name,
			ShortCode: d.ShortCode,
			Level:     d.Level,
		})
	}
	return out
}

func toTypeChangeResultResponse(res TypeChangeResult) *dto.TypeChangeResultResponse {
	return &dto.TypeChangeResultResponse{
		Requested: res.Requested,
		Updated:   res.Updated,
		Failed:    res.Failed,
		Fallback:  res.Fallback,
	}
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:           it.ID,
		CompanyID:    it.CompanyID,
		CategoryID:   it.CategoryID,
		ItemCode:     it.ItemCode,
		Name:         it.Name,
		Description:  it.Description,
		UOM:          it.UOM,
		StandardCost: it.StandardCost,
		TaxRate:      it.TaxRate,
		IsActive:     it.IsActive,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
