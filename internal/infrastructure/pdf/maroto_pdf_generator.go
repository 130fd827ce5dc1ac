// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: items / unidades / valor / stock bajo              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant | Categoría | Ubicación              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/application/report"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// InventoryReport genera el PDF del inventario y devuelve sus bytes.
func (g *MarotoPDFGenerator) InventoryReport(shopName string, items []*entity.Item, summary *dto.SummaryResponse) ([]byte, error) {
	if shopName == "" {
		shopName = "Inventario"
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shopName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	threshold := summary.Threshold
	for _, it := range items {
		m.AddRows(itemRow(it, threshold))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tienda (izq) y fecha de generación (der).
func headerRow(shopName string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales agregados del inventario.
func summaryRow(s *dto.SummaryResponse) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center, Color: c}),
		)
	}
	lowColor := colorPrimary
	if len(s.LowStock) > 0 {
		lowColor = colorDanger
	}
	return row.New(14).Add(
		cell("ITEMS", fmt.Sprintf("%d", s.TotalItems), colorPrimary),
		cell("UNIDADES", fmt.Sprintf("%d", s.TotalUnits), colorPrimary),
		cell("VALOR", "$"+s.InventoryValue.StringFixed(2), colorPrimary),
		cell("STOCK BAJO", fmt.Sprintf("%d", len(s.LowStock)), lowColor),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Categoría", 3, align.Left),
		h("Ubicación", 2, align.Left),
	)
}

// itemRow: una fila por item; la cantidad se resalta si está en stock bajo.
func itemRow(it *entity.Item, threshold int64) core.Row {
	qtyColor := (*props.Color)(nil)
	if it.Quantity <= threshold {
		qtyColor = colorDanger
	}
	return row.New(6).Add(
		col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor,
		})),
		col.New(3).Add(text.New(it.Category, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(it.Location, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
	)
}
