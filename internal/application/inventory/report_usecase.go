package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// StockReport datos del reporte de existencias.
type StockReport struct {
	Title         string
	GeneratedAt   time.Time
	Products      []*entity.Product
	TotalUnits    int
	LowStock      int
	OutOfStock    int
	StockValue    decimal.Decimal // suma de precio vigente × stock
	MovementsFrom time.Time
	Movements     []repository.LogSummary
}

// StockReportRenderer convierte el reporte a un documento (PDF).
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report *StockReport) ([]byte, error)
}

const reportPageSize = 500

// ReportUseCase arma el reporte de existencias con el movimiento de los últimos días.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	renderer    StockReportRenderer
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	renderer StockReportRenderer,
) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, logRepo: logRepo, renderer: renderer, now: time.Now}
}

// Build recorre el catálogo completo y resume los movimientos de los últimos days días.
func (uc *ReportUseCase) Build(ctx context.Context, title string, days int) (*StockReport, error) {
	if days <= 0 {
		days = 30
	}
	now := uc.now()
	rep := &StockReport{
		Title:         title,
		GeneratedAt:   now,
		StockValue:    decimal.Zero,
		MovementsFrom: now.AddDate(0, 0, -days),
	}
	for offset := 0; ; offset += reportPageSize {
		page, err := uc.productRepo.List(ctx, repository.ProductFilter{Limit: reportPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			rep.Products = append(rep.Products, p)
			rep.TotalUnits += p.Stock
			switch {
			case p.Stock == 0:
				rep.OutOfStock++
			case p.IsLowStock():
				rep.LowStock++
			}
			price := p.Price
			if p.DiscountPrice != nil {
				price = *p.DiscountPrice
			}
			rep.StockValue = rep.StockValue.Add(price.Mul(decimal.NewFromInt(int64(p.Stock))))
		}
		if len(page) < reportPageSize {
			break
		}
	}
	sums, err := uc.logRepo.SummarizeByType(ctx, rep.MovementsFrom, now)
	if err != nil {
		return nil, err
	}
	rep.Movements = sums
	return rep, nil
}

// RenderPDF arma y renderiza el reporte.
func (uc *ReportUseCase) RenderPDF(ctx context.Context, title string, days int) ([]byte, error) {
	rep, err := uc.Build(ctx, title, days)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderStockReport(ctx, rep)
}
