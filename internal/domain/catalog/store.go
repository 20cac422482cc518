// Package catalog contiene la lógica de dominio del árbol de categorías: consultas estructurales,
// herencia del tipo de ítem desde la raíz y derivación de códigos de ítem por categoría.
// Todas las operaciones son puras y trabajan sobre una instantánea ya cargada desde el repositorio.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-catalog/internal/domain"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

// MaxDepth profundidad máxima plausible del árbol; superarla se trata como error de integridad.
const MaxDepth = 64

// CategoryStore vista de solo lectura sobre todas las categorías de una empresa.
// No persiste nada: el llamador debe reconstruirla después de cualquier mutación.
type CategoryStore struct {
	byID     map[string]*entity.Category
	children map[string][]*entity.Category // clave "" = raíces
	all      []*entity.Category
}

// TreeNode nodo del árbol anidado (para respuestas jerárquicas).
type TreeNode struct {
	Category *entity.Category
	Children []*TreeNode
}

// NewCategoryStore indexa la instantánea. Los hijos quedan ordenados por nombre.
func NewCategoryStore(categories []*entity.Category) *CategoryStore {
	s := &CategoryStore{
		byID:     make(map[string]*entity.Category, len(categories)),
		children: make(map[string][]*entity.Category),
		all:      make([]*entity.Category, 0, len(categories)),
	}
	for _, c := range categories {
		if c == nil {
			continue
		}
		s.byID[c.ID] = c
		s.all = append(s.all, c)
		s.children[c.ParentID] = append(s.children[c.ParentID], c)
	}
	for _, list := range s.children {
		sortByName(list)
	}
	sortByName(s.all)
	return s
}

func sortByName(list []*entity.Category) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].Name), strings.ToLower(list[j].Name)
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
}

// Len cantidad de categorías en la instantánea.
func (s *CategoryStore) Len() int { return len(s.all) }

// All devuelve una copia de todas las categorías ordenadas por nombre.
func (s *CategoryStore) All() []*entity.Category {
	out := make([]*entity.Category, len(s.all))
	copy(out, s.all)
	return out
}

// Get busca una categoría por ID.
func (s *CategoryStore) Get(id string) (*entity.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Children hijos directos de la categoría, ordenados por nombre.
func (s *CategoryStore) Children(id string) []*entity.Category {
	if id == "" {
		return nil
	}
	return s.children[id]
}

// Roots categorías sin padre.
func (s *CategoryStore) Roots() []*entity.Category {
	return s.children[""]
}

// IsLeaf true si ninguna categoría tiene a id como padre.
func (s *CategoryStore) IsLeaf(id string) bool {
	return len(s.Children(id)) == 0
}

// Leaves categorías hoja (destinos válidos para asignar ítems).
func (s *CategoryStore) Leaves() []*entity.Category {
	var out []*entity.Category
	for _, c := range s.all {
		if s.IsLeaf(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// ancestors recorre parent_id desde id (incluido) hasta la raíz. El primer elemento es la propia categoría.
// Falla si aparece un padre inexistente o si se supera MaxDepth (ciclo).
func (s *CategoryStore) ancestors(id string) ([]*entity.Category, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	chain := []*entity.Category{c}
	for c.ParentID != "" {
		if len(chain) > MaxDepth {
			return nil, fmt.Errorf("%w: se superó la profundidad máxima (%d) desde %s", domain.ErrHierarchyCycle, MaxDepth, id)
		}
		parent, ok := s.byID[c.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: padre %s inexistente", domain.ErrHierarchyCycle, c.ParentID)
		}
		chain = append(chain, parent)
		c = parent
	}
	return chain, nil
}

// Path nombres desde la raíz hasta la categoría. ID desconocido = ruta vacía.
func (s *CategoryStore) Path(id string) ([]string, error) {
	if _, ok := s.byID[id]; !ok {
		return []string{}, nil
	}
	chain, err := s.ancestors(id)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(chain))
	for i, c := range chain {
		names[len(chain)-1-i] = c.Name
	}
	return names, nil
}

// Root raíz más cercana (ancestro con parent_id vacío).
func (s *CategoryStore) Root(id string) (*entity.Category, error) {
	chain, err := s.ancestors(id)
	if err != nil {
		return nil, err
	}
	return chain[len(chain)-1], nil
}

// IsAncestor informa si ancestorID aparece en la cadena de padres de id (o es el mismo id).
func (s *CategoryStore) IsAncestor(ancestorID, id string) bool {
	seen := 0
	for cur := id; cur != "" && seen <= MaxDepth; seen++ {
		if cur == ancestorID {
			return true
		}
		c, ok := s.byID[cur]
		if !ok {
			return false
		}
		cur = c.ParentID
	}
	return false
}

// Descendants todas las categorías alcanzables siguiendo hijos (recorrido en anchura).
func (s *CategoryStore) Descendants(id string) []*entity.Category {
	var out []*entity.Category
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range s.Children(cur) {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out
}

// NextLevel nivel para una categoría nueva bajo parentID (0 si es raíz).
func (s *CategoryStore) NextLevel(parentID string) (int, error) {
	if parentID == "" {
		return 0, nil
	}
	parent, ok := s.byID[parentID]
	if !ok {
		return 0, fmt.Errorf("%w: categoría padre %s", domain.ErrNotFound, parentID)
	}
	return parent.Level + 1, nil
}

// Tree arma el árbol anidado a partir de las raíces.
func (s *CategoryStore) Tree() []*TreeNode {
	visited := make(map[string]bool, len(s.all))
	var build func(c *entity.Category, depth int) *TreeNode
	build = func(c *entity.Category, depth int) *TreeNode {
		visited[c.ID] = true
		node := &TreeNode{Category: c}
		if depth >= MaxDepth {
			return node
		}
		for _, child := range s.Children(c.ID) {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, build(child, depth+1))
		}
		return node
	}
	roots := s.Roots()
	out := make([]*TreeNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r, 0))
	}
	return out
}
