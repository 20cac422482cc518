package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	domcatalog "github.com/jhoicas/inventario-catalog/internal/domain/catalog"
	"github.com/jhoicas/inventario-catalog/pkg/logger"
)

// DefaultFallbackWorkers concurrencia por defecto de las actualizaciones individuales.
const DefaultFallbackWorkers = 4

// TypeChangeResult cuántas subcategorías se actualizaron de las pedidas.
type TypeChangeResult struct {
	Requested int
	Updated   int
	Failed    []string
	Fallback  bool // true si la actualización masiva falló y se aplicó una por una
}

// Partial informa si alguna subcategoría quedó sin actualizar.
func (r TypeChangeResult) Partial() bool {
	return r.Updated < r.Requested
}

// TypeChangeApplier segunda fase del cambio de tipo: escribe el nuevo tipo en las subcategorías del plan.
// Intenta la actualización masiva; si falla, actualiza cada subcategoría por separado, registra y omite
// las que fallen (sin reintentos) y reporta el éxito parcial. Nunca revierte el guardado de la raíz.
type TypeChangeApplier struct {
	writer   CategoryTypeWriter
	notifier Notifier
	log      *logger.Logger
	workers  int
}

// NewTypeChangeApplier construye el aplicador. notifier y log pueden ser nil.
func NewTypeChangeApplier(writer CategoryTypeWriter, notifier Notifier, log *logger.Logger, workers int) *TypeChangeApplier {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if workers <= 0 {
		workers = DefaultFallbackWorkers
	}
	return &TypeChangeApplier{writer: writer, notifier: notifier, log: log, workers: workers}
}

// Apply aplica el plan. Las actualizaciones son idempotentes y no requieren orden entre sí.
func (a *TypeChangeApplier) Apply(ctx context.Context, plan *domcatalog.TypeChangePlan) TypeChangeResult {
	ids := plan.DescendantIDs()
	res := TypeChangeResult{Requested: len(ids)}
	if len(ids) == 0 {
		return res
	}

	n, err := a.writer.BulkUpdateItemType(ctx, plan.CompanyID, ids, plan.NewType)
	if err == nil {
		res.Updated = n
		a.report(ctx, plan, res)
		return res
	}

	a.log.Warn().Err(err).
		Str("root_id", plan.RootID).
		Int("descendants", len(ids)).
		Msg("actualización masiva de tipo falló, aplicando una por una")
	res.Fallback = true

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(a.workers)
	for _, id := range ids {
		g.Go(func() error {
			if err := a.writer.UpdateItemType(ctx, plan.CompanyID, id, plan.NewType); err != nil {
				a.log.Warn().Err(err).
					Str("root_id", plan.RootID).
					Str("category_id", id).
					Msg("no se pudo actualizar el tipo de la subcategoría, se omite")
				mu.Lock()
				res.Failed = append(res.Failed, id)
				mu.Unlock()
				return nil
			}
			mu.Lock()
			res.Updated++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(res.Failed)

	a.report(ctx, plan, res)
	return res
}

func (a *TypeChangeApplier) report(ctx context.Context, plan *domcatalog.TypeChangePlan, res TypeChangeResult) {
	if res.Partial() {
		a.log.Warn().
			Str("root_id", plan.RootID).
			Int("updated", res.Updated).
			Int("requested", res.Requested).
			Msg("propagación de tipo parcial")
		a.notifier.Warning(ctx, fmt.Sprintf("Se actualizaron %d de %d subcategorías a %s", res.Updated, res.Requested, plan.NewType))
		return
	}
	a.log.Info().
		Str("root_id", plan.RootID).
		Int("updated", res.Updated).
		Str("item_type", string(plan.NewType)).
		Msg("tipo propagado a subcategorías")
	a.notifier.Success(ctx, fmt.Sprintf("Se actualizaron %d subcategorías a %s", res.Updated, plan.NewType))
}
