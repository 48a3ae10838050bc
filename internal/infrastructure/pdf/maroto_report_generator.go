// Package pdf implementa la generación del reporte de movimientos de
// inventario con Maroto v2: encabezado con título y fecha, tabla de filas
// (fecha, SKU, producto, tipo, cantidad, motivo, usuario) y pie con el total
// de registros.
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

	"github.com/dgiraldo/stockia-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 15, Green: 76, Blue: 129}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// MovementsPDF genera el PDF del reporte de movimientos y devuelve sus bytes.
func (g *MarotoReportGenerator) MovementsPDF(_ context.Context, title string, rows []report.MovementRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(movementRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Motivo", 2, align.Left),
		h("Usuario", 1, align.Left),
	)
}

func movementRow(r report.MovementRow) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(r.Date, 2, align.Left),
		cell(r.ProductSKU, 2, align.Left),
		cell(r.ProductName, 3, align.Left),
		cell(r.Type, 1, align.Center),
		cell(strconv.Itoa(r.Quantity), 1, align.Right),
		cell(r.Reason, 2, align.Left),
		cell(r.User, 1, align.Left),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total de registros: %d", total), props.Text{
				Size: 8, Color: colorGray, Top: 2, Align: align.Right,
			}),
		),
	)
}
