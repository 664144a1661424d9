package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
)

// InventoryHandler ajustes de stock, log de inventario, alertas y reporte (solo administradores).
type InventoryHandler struct {
	ledger *inventory.StockLedgerUseCase
	query  *inventory.QueryUseCase
	report *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler. report puede ser nil (sin reporte PDF).
func NewInventoryHandler(ledger *inventory.StockLedgerUseCase, query *inventory.QueryUseCase, report *inventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, query: query, report: report}
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto
// @Description  mode=relative suma value al stock observado; mode=absolute lo fija. El resultado nunca es negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "mode, current_stock, value, note"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/stock [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ledger.AdjustStock(c.UserContext(), inventory.AdjustStockInput{
		ProductID:         c.Params("id"),
		CurrentKnownStock: in.CurrentStock,
		Mode:              in.Mode,
		Value:             in.Value,
		Note:              in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.AdjustStockResponse{
		ProductID:      res.ProductID,
		Name:           res.Name,
		NewStock:       res.NewStock,
		ChangeType:     res.Entry.ChangeType,
		QuantityChange: res.Entry.QuantityChange,
	}
	if res.AuditErr != nil {
		out.Warning = "stock actualizado, pero no se pudo registrar en el log de inventario"
	}
	return c.JSON(out)
}

// ProductLogs godoc
// @Summary      Historial de inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite (default 20, máx 100)"
// @Param        offset  query  int     false  "Offset"
// @Success      200     {object}  dto.InventoryLogListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/inventory-logs [get]
func (h *InventoryHandler) ProductLogs(c *fiber.Ctx) error {
	out, err := h.query.ProductLogs(c.UserContext(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Log de inventario global
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite (default 20, máx 100)"
// @Param        offset  query  int     false  "Offset"
// @Success      200     {object}  dto.InventoryLogListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/admin/inventory/logs [get]
func (h *InventoryHandler) Logs(c *fiber.Ctx) error {
	from, to, ok := h.rangeQuery(c)
	if !ok {
		return nil
	}
	out, err := h.query.Logs(c.UserContext(), from, to, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportLogs godoc
// @Summary      Exportar log de inventario (CSV)
// @Tags         inventory
// @Security     Bearer
// @Produce      text/csv
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/inventory/logs/export [get]
func (h *InventoryHandler) ExportLogs(c *fiber.Ctx) error {
	from, to, ok := h.rangeQuery(c)
	if !ok {
		return nil
	}
	text, err := h.query.ExportLogs(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory-logs.csv"`)
	return c.SendString(text)
}

// Summary godoc
// @Summary      Resumen de movimientos por tipo
// @Description  Sin rango, cubre los últimos 30 días.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200   {object}  dto.LogSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	from, to, ok := h.rangeQuery(c)
	if !ok {
		return nil
	}
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	out, err := h.query.Summary(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock activas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20, máx 100)"
// @Param        offset  query  int  false  "Offset"
// @Success      200     {array}   dto.InventoryAlertResponse
// @Router       /api/admin/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.query.ActiveAlerts(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o bajo su umbral de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (default 50, máx 200)"
// @Success      200    {array}   dto.LowStockItemDTO
// @Router       /api/admin/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	out, err := h.query.LowStock(c.UserContext(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de stock en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        days  query  int  false  "Ventana de movimientos en días (default 30)"
// @Success      200   {file}    file
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/inventory/report.pdf [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reporte no disponible"})
	}
	days := c.QueryInt("days", 30)
	if days <= 0 || days > 365 {
		days = 30
	}
	pdf, err := h.report.RenderPDF(c.UserContext(), "Reporte de inventario", days)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-%s.pdf"`, time.Now().UTC().Format(time.DateOnly)))
	return c.Send(pdf)
}

// rangeQuery lee from/to. Si falla, ya respondió 400 y ok es false.
func (h *InventoryHandler) rangeQuery(c *fiber.Ctx) (from, to *time.Time, ok bool) {
	var err error
	if from, err = timeQuery(c, "from", false); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		return nil, nil, false
	}
	if to, err = timeQuery(c, "to", true); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		return nil, nil, false
	}
	return from, to, true
}
