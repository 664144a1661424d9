package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-backoffice/internal/application/catalog"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/usecase"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	StockLedger *inventory.StockLedgerUseCase
	InventoryQ  *inventory.QueryUseCase
	ReportUC    *inventory.ReportUseCase
	CatalogUC   *catalog.UseCase
	Access      repository.AccessRepository
	JWTSecret   string
	JWTIssuer   string
	Logger      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Panel de administración: Bearer Token + is_admin
	admin := api.Group("/admin",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequireAdmin(deps.Access, deps.Logger),
	)

	inventoryHandler := NewInventoryHandler(deps.StockLedger, deps.InventoryQ, deps.ReportUC)

	// Products
	products := admin.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock", inventoryHandler.AdjustStock)
	products.Get("/:id/inventory-logs", inventoryHandler.ProductLogs)

	// Inventory
	inv := admin.Group("/inventory")
	inv.Get("/logs", inventoryHandler.Logs)
	inv.Get("/logs/export", inventoryHandler.ExportLogs)
	inv.Get("/summary", inventoryHandler.Summary)
	inv.Get("/alerts", inventoryHandler.Alerts)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/report.pdf", inventoryHandler.Report)

	// Catalog
	cat := admin.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	cat.Get("/export", catalogHandler.Export)
	cat.Post("/import", catalogHandler.Import)
}
