// Package pdf implementa la exportación de una versión de presupuesto como
// documento PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + Cliente  │  Versión + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por cada sección:                                           │
//	│    TÍTULO: nombre de sección (+ rubro)                       │
//	│    TABLA: Partida | Unidad | Cant | Costo | Subtotal         │
//	│    Subtotal de sección                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL PRESUPUESTO                                       │
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

	budgetdom "github.com/obrasoft/obra-api/internal/domain/budget"
	"github.com/obrasoft/obra-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.BudgetPDFGenerator = (*MarotoBudgetGenerator)(nil)

// MarotoBudgetGenerator implementa BudgetPDFGenerator usando Maroto v2.
type MarotoBudgetGenerator struct{}

// NewMarotoBudgetGenerator construye el generador.
func NewMarotoBudgetGenerator() *MarotoBudgetGenerator { return &MarotoBudgetGenerator{} }

// GenerateBudget genera el PDF de una versión de presupuesto y devuelve sus bytes.
func (g *MarotoBudgetGenerator) GenerateBudget(in ports.BudgetPDFInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Presupuesto de obra", true).
		WithAuthor(in.Project.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for i := range in.Snapshot.Sections {
		sec := &in.Snapshot.Sections[i]
		m.AddRows(sectionTitleRow(sec, in.RubroNames))
		m.AddRows(itemsHeaderRow())
		for _, r := range itemRows(sec) {
			m.AddRows(r)
		}
		m.AddRows(sectionSubtotalRow(sec))
		m.AddRows(line.NewRow(2))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(in))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proyecto + cliente (izq) y versión + fecha (der).
func headerRow(in ports.BudgetPDFInput) core.Row {
	fecha := in.Version.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(in.Project.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cliente: "+nonEmpty(in.Project.ClientName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PRESUPUESTO DE OBRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Versión %d", in.Version.VersionNumber), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// sectionTitleRow: nombre de la sección, con el rubro entre paréntesis si difiere.
func sectionTitleRow(sec *budgetdom.Section, rubroNames map[string]string) core.Row {
	title := sec.Name
	if rubro, ok := rubroNames[sec.RubroID]; ok && rubro != "" && rubro != sec.Name {
		title = fmt.Sprintf("%s (%s)", sec.Name, rubro)
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func itemsHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray, Align: align.Right}
	return row.New(6).Add(
		col.New(5).Add(text.New("Partida", header)),
		col.New(1).Add(text.New("Unidad", header)),
		col.New(2).Add(text.New("Cantidad", headerRight)),
		col.New(2).Add(text.New("Costo", headerRight)),
		col.New(2).Add(text.New("Subtotal", headerRight)),
	)
}

func itemRows(sec *budgetdom.Section) []core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	rows := make([]core.Row, 0, len(sec.Items))
	for _, it := range sec.Items {
		rows = append(rows, row.New(5).Add(
			col.New(5).Add(text.New(it.Name, cell)),
			col.New(1).Add(text.New(it.Unit, cell)),
			col.New(2).Add(text.New(it.Quantity.OrZero().String(), cellRight)),
			col.New(2).Add(text.New(it.Cost.OrZero().StringFixed(2), cellRight)),
			col.New(2).Add(text.New(it.Subtotal.OrZero().StringFixed(2), cellRight)),
		))
	}
	return rows
}

func sectionSubtotalRow(sec *budgetdom.Section) core.Row {
	return row.New(6).Add(
		col.New(10).Add(text.New("Subtotal sección", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		})),
		col.New(2).Add(text.New(sec.BudgetedAmount().StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		})),
	)
}

func totalRow(in ports.BudgetPDFInput) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL DEL PRESUPUESTO", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(3).Add(text.New(in.Version.TotalAmount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
