// migrate aplica las migraciones SQL embebidas con goose.
//
// Uso: go run ./cmd/migrate [up|down|status|version|redo|reset] [args...]
// Sin comando ejecuta "up".
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bancosemillas-api/pkg/config"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "tiempo máximo de la migración")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, command, args...); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}
