// Package pdf genera el reporte de movimientos por período en PDF con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + rango de fechas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Entradas | Salidas | Saldo | Volumen     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP: productos con mayor volumen del período               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator genera el PDF del reporte de período.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GeneratePeriodPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GeneratePeriodPDF(report dto.PeriodReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Rows) {
		m.AddRows(r)
	}
	if len(report.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	if len(report.TopVolumen) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(topTitleRow())
		for _, r := range topRows(report.TopVolumen) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y rango del período (der).
func headerRow(report dto.PeriodReportDTO) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Período: %s a %s", report.From, report.To), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de agregados.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Entradas", 2, align.Right),
		h("Salidas", 2, align.Right),
		h("Saldo", 2, align.Right),
		h("Volumen", 2, align.Right),
	)
}

// tableRows: una fila por producto agregado.
func tableRows(rows []dto.PeriodRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		cell := func(value string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(value, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		result = append(result, row.New(7).Add(
			cell(r.Producto, 4, align.Left),
			cell(r.Entradas.String(), 2, align.Right),
			cell(r.Salidas.String(), 2, align.Right),
			cell(r.Saldo.String(), 2, align.Right),
			cell(r.Volumen.String(), 2, align.Right),
		))
	}
	return result
}

// topTitleRow: título del bloque top por volumen.
func topTitleRow() core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("MAYOR VOLUMEN DEL PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

// topRows: ranking por volumen descendente.
func topRows(rows []dto.PeriodRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		result = append(result, row.New(6).Add(
			col.New(8).Add(text.New(
				fmt.Sprintf("%d. %s", i+1, r.Producto),
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(4).Add(text.New(
				r.Volumen.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}
