// Package pdf genera el reporte de existencias del inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte   │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos | Unidades | Stock bajo | Agotados | $  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Stock | Umbral | Precio | Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOVIMIENTOS: aumentos / disminuciones / ajustes            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarn    = &props.Color{Red: 200, Green: 120, Blue: 0}
)

var changeTypeLabels = map[string]string{
	entity.ChangeTypeIncrease:   "Aumentos",
	entity.ChangeTypeDecrease:   "Disminuciones",
	entity.ChangeTypeAdjustment: "Ajustes sin cambio",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.StockReportRenderer = (*StockReportGenerator)(nil)

// StockReportGenerator implementa inventory.StockReportRenderer usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) RenderStockReport(_ context.Context, rep *inventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(rep.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(rep.Products)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(movementRows(rep)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep *inventory.StockReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(rep.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(rep *inventory.StockReport) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Align: align.Center, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Productos", strconv.Itoa(len(rep.Products)), colorPrimary),
		cell("Unidades", formatMoney(strconv.Itoa(rep.TotalUnits)), colorPrimary),
		cell("Stock bajo", strconv.Itoa(rep.LowStock), colorWarn),
		cell("Agotados", strconv.Itoa(rep.OutOfStock), colorDanger),
		col.New(4).Add(
			text.New("Valor del inventario", props.Text{Size: 7, Color: colorGray, Align: align.Right, Top: 1, Right: 1}),
			text.New("$"+formatMoney(rep.StockValue.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Align: align.Right, Top: 5, Right: 1,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Stock", 1, align.Center),
		h("Umbral", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

func productRows(products []*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		status, c := "OK", colorGray
		switch {
		case p.Stock == 0:
			status, c = "AGOTADO", colorDanger
		case p.IsLowStock():
			status, c = "STOCK BAJO", colorWarn
		}
		price := "$" + formatMoney(p.Price.StringFixed(0))
		if p.DiscountPrice != nil {
			price = "$" + formatMoney(p.DiscountPrice.StringFixed(0)) + " (oferta)"
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(nonEmpty(p.SKU, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(p.Stock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(p.LowStockThreshold), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(status, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: c})),
		))
	}
	return result
}

func movementRows(rep *inventory.StockReport) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("MOVIMIENTOS DESDE "+rep.MovementsFrom.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(rep.Movements) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin movimientos registrados en el período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	for _, s := range rep.Movements {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(nonEmpty(changeTypeLabels[s.ChangeType], s.ChangeType), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d movimientos", s.Movements), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(4).Add(text.New(fmt.Sprintf("%+d unidades", s.NetQuantity), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
