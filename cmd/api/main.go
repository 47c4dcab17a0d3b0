// @title                       Banco de Semillas API
// @version                     1.0
// @description                 Motor de estado e inventario de un banco de semillas: ciclo de vida de lotes, capacidad de ubicaciones y ledger de movimientos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancosemillas-api/docs"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/application/usecase"
	"github.com/jhoicas/bancosemillas-api/internal/infrastructure/memory"
	"github.com/jhoicas/bancosemillas-api/internal/infrastructure/metrics"
	"github.com/jhoicas/bancosemillas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bancosemillas-api/internal/interfaces/http"
	"github.com/jhoicas/bancosemillas-api/pkg/config"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Engine.StorageDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}
	defaultCapacity, err := decimal.NewFromString(cfg.Engine.DefaultLocationCapacity)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Engine.DefaultLocationCapacity).Msg("ENGINE_DEFAULT_LOCATION_CAPACITY inválido")
	}

	ctx := context.Background()
	var (
		tx   inventory.TxRunner
		pool *pgxpool.Pool
	)
	switch cfg.Engine.StorageDriver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar; cargue tipos de semilla y clientes por /api/seed-types y /api/clients")
		tx = memory.NewStore()
	default:
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		tx = postgres.NewTxRunner(pool)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineMetrics := metrics.NewEngine(reg, "seedbank")
	httpMetrics := metrics.NewHTTP(reg, "seedbank")

	deps := inventory.Deps{
		Tx:      tx,
		Log:     log.Named("engine"),
		Metrics: engineMetrics,
		Config: inventory.Config{
			MaxBatchSize:    cfg.Engine.MaxBatchSize,
			DuplicateWindow: cfg.Engine.DuplicateWindow,
		},
	}
	lifecycleUC := inventory.NewLifecycleUseCase(deps)
	batchUC := inventory.NewBatchUseCase(lifecycleUC)
	movementUC := inventory.NewMovementUseCase(deps)
	withdrawalUC := inventory.NewWithdrawalUseCase(lifecycleUC)
	locationUC := usecase.NewLocationUseCase(tx, log.Named("locations"), defaultCapacity)
	catalogUC := usecase.NewCatalogUseCase(tx, log.Named("catalogs"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Banco de Semillas API",
		}))
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if pool != nil {
			if err := pool.Ping(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Lifecycle:   lifecycleUC,
		Batch:       batchUC,
		Movements:   movementUC,
		Withdrawals: withdrawalUC,
		Locations:   locationUC,
		Catalogs:    catalogUC,
		Log:         log.Named("http"),
		JWTSecret:   cfg.JWT.Secret,
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
