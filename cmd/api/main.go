// @title           Inventario Catalog API
// @version         1.0
// @description     Árbol de categorías, herencia de tipo de ítem y códigos de ítem del módulo de inventario.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
// @description     Bearer <token JWT>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-catalog/docs"
	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/internal/domain/repository"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/notify"
	"github.com/jhoicas/inventario-catalog/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-catalog/internal/interfaces/http"
	"github.com/jhoicas/inventario-catalog/pkg/config"
	"github.com/jhoicas/inventario-catalog/pkg/logger"
)

// storage agrupa los adaptadores según STORAGE_DRIVER.
type storage struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
	writer     catalog.CategoryTypeWriter
	tx         catalog.TxRunner
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		categoryRepo := memory.NewCategoryRepository()
		return &storage{
			categories: categoryRepo,
			items:      memory.NewItemRepository(),
			writer:     categoryRepo,
			tx:         categoryRepo,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	categoryRepo := postgres.NewCategoryRepository(pool)
	return &storage{
		categories: categoryRepo,
		items:      postgres.NewItemRepository(pool),
		writer:     categoryRepo,
		tx:         postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	notifier := notify.NewLogNotifier(log)
	applier := catalog.NewTypeChangeApplier(store.writer, notifier, log, cfg.Catalog.FallbackWorkers)
	categoryUC := catalog.NewCategoryUseCase(store.categories, store.items, store.tx, applier, notifier)
	itemUC := catalog.NewItemUseCase(store.items, store.categories, notifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true, // los params de ruta llegan a repositorios que los guardan
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Catalog API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		ItemUC:     itemUC,
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
