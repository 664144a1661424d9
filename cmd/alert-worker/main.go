// Command alert-worker consume los eventos StockChanged de Kafka y mantiene las alertas de inventario.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/application/alerts"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/messaging"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/observability"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-backoffice/pkg/config"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

const version = "1.0.0"

func main() {
	resync := flag.Bool("resync", false, "reevaluar todo el catálogo antes de consumir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	cfg.Otel.ServiceName = cfg.App.Name + "-alert-worker"

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.Otel.ServiceName,
	})
	if !cfg.Kafka.Enabled() {
		log.Fatal().Msg("KAFKA_BROKERS es obligatorio para el worker de alertas")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Otel, version)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	evaluator := alerts.NewEvaluator(postgres.NewTxRunner(pool), log.Component("alerts"))
	if *resync {
		n, err := evaluator.Resync(ctx, postgres.NewProductRepository(pool))
		if err != nil {
			log.Error().Err(err).Int("changed", n).Msg("resincronización incompleta")
		} else {
			log.Info().Int("changed", n).Msg("alertas resincronizadas")
		}
	}

	reader := messaging.NewReader(cfg.Kafka)
	defer reader.Close()

	log.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.StockTopic).
		Str("group", cfg.Kafka.GroupID).
		Msg("worker de alertas iniciado")

	consumer := messaging.NewStockConsumer(reader, evaluator, log.Component("consumer"))
	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("consumidor finalizado con error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar trazas")
	}
	log.Info().Msg("worker detenido")
}
