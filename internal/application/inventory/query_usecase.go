package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/csvbatch"
)

// LogExportHeaders columnas de la exportación del log de inventario.
var LogExportHeaders = []string{
	"created_at", "product_id", "change_type", "quantity_change", "previous_stock", "new_stock", "note",
}

const maxLogExportRows = 10000

// QueryUseCase lecturas del panel de inventario: stock bajo, log, resumen y alertas activas.
type QueryUseCase struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	alertRepo   repository.InventoryAlertRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	alertRepo repository.InventoryAlertRepository,
) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, logRepo: logRepo, alertRepo: alertRepo}
}

// LowStock productos en o bajo su umbral con prioridad de reposición.
// Orden: agotados primero, luego mayor déficit, luego nombre.
func (uc *QueryUseCase) LowStock(ctx context.Context, limit int) ([]dto.LowStockItemDTO, error) {
	products, err := uc.productRepo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		items = append(items, dto.LowStockItemDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
			Deficit:           p.LowStockThreshold - p.Stock,
			OutOfStock:        p.Stock == 0,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.OutOfStock != b.OutOfStock {
			return a.OutOfStock
		}
		if a.Deficit != b.Deficit {
			return a.Deficit > b.Deficit
		}
		return a.Name < b.Name
	})

	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}

// ProductLogs historial de un producto. domain.ErrNotFound si el producto no existe.
func (uc *QueryUseCase) ProductLogs(ctx context.Context, productID string, page dto.PageRequest) (*dto.InventoryLogListResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	entries, err := uc.logRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toLogList(entries, page), nil
}

// Logs movimientos de todos los productos en un rango opcional.
func (uc *QueryUseCase) Logs(ctx context.Context, from, to *time.Time, page dto.PageRequest) (*dto.InventoryLogListResponse, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	entries, err := uc.logRepo.ListRecent(ctx, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toLogList(entries, page), nil
}

// ExportLogs el log de inventario como texto delimitado por comas.
func (uc *QueryUseCase) ExportLogs(ctx context.Context, from, to *time.Time) (string, error) {
	if from != nil && to != nil && from.After(*to) {
		return "", domain.ErrInvalidInput
	}
	entries, err := uc.logRepo.ListRecent(ctx, from, to, maxLogExportRows, 0)
	if err != nil {
		return "", err
	}
	rows := make([]csvbatch.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, csvbatch.Row{
			"created_at":      e.CreatedAt,
			"product_id":      e.ProductID,
			"change_type":     e.ChangeType,
			"quantity_change": e.QuantityChange,
			"previous_stock":  e.PreviousStock,
			"new_stock":       e.NewStock,
			"note":            e.Note,
		})
	}
	return csvbatch.Encode(LogExportHeaders, rows), nil
}

// Summary cantidad de movimientos y delta neto por tipo de cambio en [from, to].
func (uc *QueryUseCase) Summary(ctx context.Context, from, to time.Time) (*dto.LogSummaryResponse, error) {
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}
	sums, err := uc.logRepo.SummarizeByType(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]repository.LogSummary, len(sums))
	for _, s := range sums {
		byType[s.ChangeType] = s
	}
	out := &dto.LogSummaryResponse{From: from, To: to}
	// Siempre los tres tipos, en orden fijo, aunque no tengan movimientos.
	for _, ct := range []string{entity.ChangeTypeIncrease, entity.ChangeTypeDecrease, entity.ChangeTypeAdjustment} {
		s := byType[ct]
		out.Items = append(out.Items, dto.LogSummaryItem{ChangeType: ct, Movements: s.Movements, NetQuantity: s.NetQuantity})
		out.TotalMovements += s.Movements
		out.NetQuantity += s.NetQuantity
	}
	return out, nil
}

// ActiveAlerts alertas activas para el panel.
func (uc *QueryUseCase) ActiveAlerts(ctx context.Context, page dto.PageRequest) ([]dto.InventoryAlertResponse, error) {
	page.DefaultPage()
	items, err := uc.alertRepo.ListActive(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryAlertResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.InventoryAlertResponse{
			ID:           it.Alert.ID,
			ProductID:    it.Alert.ProductID,
			ProductName:  it.ProductName,
			SKU:          it.SKU,
			AlertType:    it.Alert.AlertType,
			Threshold:    it.Alert.Threshold,
			CurrentStock: it.CurrentStock,
			UpdatedAt:    it.Alert.UpdatedAt,
		})
	}
	return out, nil
}

// ToLogResponse convierte una entrada del log a su DTO.
func ToLogResponse(e *entity.InventoryLogEntry) dto.InventoryLogResponse {
	return dto.InventoryLogResponse{
		ID:             e.ID,
		ProductID:      e.ProductID,
		ChangeType:     e.ChangeType,
		QuantityChange: e.QuantityChange,
		PreviousStock:  e.PreviousStock,
		NewStock:       e.NewStock,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
	}
}

func toLogList(entries []*entity.InventoryLogEntry, page dto.PageRequest) *dto.InventoryLogListResponse {
	items := make([]dto.InventoryLogResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToLogResponse(e))
	}
	return &dto.InventoryLogListResponse{
		Items: items,
		Page:  page.Response(),
	}
}
