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

	_ "github.com/jhoicas/tienda-backoffice/docs"
	"github.com/jhoicas/tienda-backoffice/internal/application/alerts"
	"github.com/jhoicas/tienda-backoffice/internal/application/catalog"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/usecase"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/messaging"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/tienda-backoffice/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-backoffice/internal/interfaces/http"
	"github.com/jhoicas/tienda-backoffice/pkg/config"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

const version = "1.0.0"

// @title                       Tienda Backoffice API
// @version                     1.0
// @description                 Panel de administración de la tienda: catálogo, libro de stock y alertas de inventario.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Otel, version)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	logRepo := postgres.NewInventoryLogRepository(pool)
	alertRepo := postgres.NewInventoryAlertRepository(pool)
	accessRepo := postgres.NewAccessRepository(pool)

	// Alertas: vía Kafka (worker aparte) o en proceso si no hay brokers.
	var publisher inventory.StockEventPublisher
	if cfg.Kafka.Enabled() {
		stockPublisher := messaging.NewStockPublisher(messaging.NewWriter(cfg.Kafka))
		defer stockPublisher.Close()
		publisher = stockPublisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.StockTopic).Msg("eventos de stock por Kafka")
	} else {
		evaluator := alerts.NewEvaluator(postgres.NewTxRunner(pool), log.Component("alerts"))
		publisher = messaging.NewInProcessPublisher(evaluator)
		log.Info().Msg("eventos de stock en proceso")
	}

	stockLedger := inventory.NewStockLedgerUseCase(productRepo, logRepo,
		inventory.WithPublisher(publisher),
		inventory.WithLogger(log.Component("stock_ledger")),
	)
	queryUC := inventory.NewQueryUseCase(productRepo, logRepo, alertRepo)
	reportUC := inventory.NewReportUseCase(productRepo, logRepo, infrapdf.NewStockReportGenerator())
	productUC := usecase.NewProductUseCase(productRepo, stockLedger)
	catalogUC := catalog.NewUseCase(productRepo, stockLedger, cfg.Catalog.MaxImportBytes, log.Component("catalog"))

	bodyLimit := 4 * 1024 * 1024
	if cfg.Catalog.MaxImportBytes > bodyLimit {
		bodyLimit = cfg.Catalog.MaxImportBytes
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		StockLedger: stockLedger,
		InventoryQ:  queryUC,
		ReportUC:    reportUC,
		CatalogUC:   catalogUC,
		Access:      accessRepo,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Logger:      log.Component("http"),
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
