package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-catalog/internal/domain"
)

func newNextCodeCommand() *cobra.Command {
	flags := connFlags()
	cmd := &cobra.Command{
		Use:   "next-code <category-id>",
		Short: "Vista previa del siguiente código de ítem (no lo reserva)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			code, err := s.client.NextCode(commandContext(cmd), args[0])
			if err != nil {
				if errors.Is(err, domain.ErrNotLeafCategory) {
					s.notifier.Warning(commandContext(cmd), "Solo las categorías hoja reciben ítems")
				} else {
					s.notifier.Error(commandContext(cmd), err.Error())
				}
				return err
			}
			_, err = fmt.Fprintln(s.out, code)
			return err
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newDeleteCommand() *cobra.Command {
	flags := connFlags()
	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Elimina una categoría hoja sin ítems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			return runDelete(commandContext(cmd), s, args[0])
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// runDelete rechaza localmente las categorías con subcategorías; el backend
// sigue siendo quien rechaza las que tienen ítems.
func runDelete(ctx context.Context, s *session, id string) error {
	c, err := s.client.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.notifier.Warning(ctx, "Categoría no encontrada")
		} else {
			s.notifier.Error(ctx, err.Error())
		}
		return err
	}
	if !c.IsLeaf {
		s.notifier.Warning(ctx, fmt.Sprintf("No se puede eliminar %s: tiene subcategorías", c.Name))
		return domain.ErrHasChildren
	}
	if err := s.client.DeleteCategory(ctx, c.ID); err != nil {
		if errors.Is(err, domain.ErrCategoryInUse) || errors.Is(err, domain.ErrHasChildren) {
			s.notifier.Warning(ctx, err.Error())
		} else {
			s.notifier.Error(ctx, err.Error())
		}
		return err
	}
	s.notifier.Success(ctx, fmt.Sprintf("Categoría %s eliminada", c.Name))
	return nil
}
