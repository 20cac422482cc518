package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	domcatalog "github.com/jhoicas/inventario-catalog/internal/domain/catalog"
)

func newTreeCommand() *cobra.Command {
	flags := connFlags()
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Muestra el árbol de categorías con su tipo de ítem resuelto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			list, err := s.client.ListCategories(commandContext(cmd))
			if err != nil {
				s.notifier.Error(commandContext(cmd), err.Error())
				return err
			}
			return renderTree(s.out, domcatalog.NewCategoryStore(list))
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// renderTree imprime un nodo por línea: sangría por nivel, código corto, nombre y tipo.
// Las hojas se marcan con "*" (destinos válidos para ítems).
func renderTree(w io.Writer, store *domcatalog.CategoryStore) error {
	var walk func(nodes []*domcatalog.TreeNode, depth int) error
	walk = func(nodes []*domcatalog.TreeNode, depth int) error {
		for _, n := range nodes {
			itemType, err := domcatalog.ResolveType(store, n.Category)
			if err != nil {
				return err
			}
			leaf := ""
			if len(n.Children) == 0 {
				leaf = " *"
			}
			if _, err := fmt.Fprintf(w, "%s[%s] %s (%s)%s\n",
				strings.Repeat("  ", depth), n.Category.ShortCode, n.Category.Name, itemType, leaf); err != nil {
				return err
			}
			if err := walk(n.Children, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(store.Tree(), 0)
}
