package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/application/dto"
	domcatalog "github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/entity"
)

func newRetypeCommand() *cobra.Command {
	flags := connFlags()
	var yes bool
	cmd := &cobra.Command{
		Use:   "retype <root-id> <item-type>",
		Short: "Cambia el tipo de ítem de una raíz y lo propaga a sus subcategorías",
		Long: `Cambia el tipo de ítem de una categoría raíz.

Si la raíz tiene subcategorías muestra cuáles cambiarán y pide confirmación (o --yes).
Guarda la raíz y luego actualiza las subcategorías con el endpoint masivo; si falla,
las actualiza una por una y reporta cuántas quedaron.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			_, err = runRetype(commandContext(cmd), s, args[0], entity.ItemType(domcatalog.NormalizeShortCode(args[1])), yes)
			return err
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirmar sin preguntar")
	return cmd
}

// runRetype ejecuta el guardado en dos fases. Devuelve nil si el usuario cancela.
func runRetype(ctx context.Context, s *session, rootID string, newType entity.ItemType, yes bool) (*catalog.TypeChangeResult, error) {
	list, err := s.client.ListCategories(ctx)
	if err != nil {
		s.notifier.Error(ctx, err.Error())
		return nil, err
	}
	store := domcatalog.NewCategoryStore(list)
	root, ok := store.Get(rootID)
	if !ok {
		err := fmt.Errorf("categoría %s no encontrada", rootID)
		s.notifier.Warning(ctx, err.Error())
		return nil, err
	}
	plan, err := domcatalog.PlanTypeChange(store, root, newType)
	if err != nil {
		s.notifier.Warning(ctx, err.Error())
		return nil, err
	}

	if plan.RequiresConfirmation() && !yes {
		printPlan(s.out, plan)
		if !askConfirmation(s.out, s.in) {
			s.notifier.Warning(ctx, "Cambio de tipo cancelado, no se guardó nada")
			return nil, nil
		}
	}

	itemType := string(newType)
	_, err = s.client.UpdateCategory(ctx, root.ID, dto.UpdateCategoryRequest{
		ItemType:          &itemType,
		ConfirmTypeChange: true,
		SkipCascade:       true,
	})
	if err != nil {
		s.notifier.Error(ctx, "No se pudo guardar la raíz: "+err.Error())
		return nil, err
	}
	if !plan.RequiresConfirmation() {
		s.notifier.Success(ctx, fmt.Sprintf("%s ahora es %s", root.Name, newType))
		return &catalog.TypeChangeResult{}, nil
	}

	res := catalog.NewTypeChangeApplier(s.client, s.notifier, s.log, s.workers).Apply(ctx, plan)
	return &res, nil
}

func printPlan(w io.Writer, plan *domcatalog.TypeChangePlan) {
	fmt.Fprintf(w, "Cambiar %s → %s afectará %d subcategorías:\n", plan.OldType, plan.NewType, len(plan.Descendants))
	for _, c := range plan.Descendants {
		fmt.Fprintf(w, "  %s[%s] %s\n", strings.Repeat("  ", max(c.Level-1, 0)), c.ShortCode, c.Name)
	}
}

// askConfirmation lee una línea; solo "s", "si", "sí", "y" o "yes" confirman.
func askConfirmation(w io.Writer, r io.Reader) bool {
	fmt.Fprint(w, "¿Continuar? [s/N]: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	default:
		return false
	}
}
