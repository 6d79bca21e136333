// Package pdf genera el reporte PDF de una simulación Monte Carlo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + sujeto         │  ID + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARÁMETROS: métrica / corridas / semilla / duración         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: media, desviación, mín, máx, P05, P50, P95         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DISTRIBUCIÓN: histograma por intervalos                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	appsim "github.com/jhoicas/Costeo-api/internal/application/simulation"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBar     = &props.Color{Red: 0, Green: 110, Blue: 180}
)

const (
	histogramBins = 10
	barWidth      = 40
)

var _ appsim.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa simulation.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	num *format.Printer
}

// NewMarotoReportGenerator construye el generador; lang define el formato numérico ("es" por defecto).
func NewMarotoReportGenerator(lang string) *MarotoReportGenerator {
	return &MarotoReportGenerator{num: format.New(lang)}
}

// GenerateRunReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateRunReport(_ context.Context, run *entity.SimulationRun) ([]byte, error) {
	if run == nil {
		return nil, fmt.Errorf("pdf: simulación nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de simulación", true).
		WithAuthor("Costeo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.parametersRow(run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("RESUMEN ESTADÍSTICO"))
	for _, r := range g.summaryRows(run) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("DISTRIBUCIÓN DE RESULTADOS"))
	for _, r := range g.histogramRows(run.Samples) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y sujeto (izq), ID y fecha (der).
func (g *MarotoReportGenerator) headerRow(run *entity.SimulationRun) core.Row {
	subject := "Producto"
	if run.SubjectType == entity.SubjectCenter {
		subject = "Centro"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(run.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s: %s", subject, run.SubjectName), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("SIMULACIÓN MONTE CARLO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(run.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+run.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// parametersRow: métrica, corridas, semilla y duración.
func (g *MarotoReportGenerator) parametersRow(run *entity.SimulationRun) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PARÁMETROS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Métrica: %s   |   Corridas: %s   |   Semilla: %d   |   Duración: %s",
				metricLabel(run.Metric),
				g.num.Int(run.Runs),
				run.Seed,
				run.Duration.String(),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// summaryRows: una fila etiqueta/valor por estadístico.
func (g *MarotoReportGenerator) summaryRows(run *entity.SimulationRun) []core.Row {
	stats := []struct {
		label string
		value decimal.Decimal
	}{
		{"Media", run.Mean},
		{"Desviación estándar", run.StdDev},
		{"Mínimo", run.Min},
		{"Percentil 5", run.P05},
		{"Mediana (P50)", run.P50},
		{"Percentil 95", run.P95},
		{"Máximo", run.Max},
	}
	rows := make([]core.Row, 0, len(stats)+1)
	rows = append(rows, row.New(6).Add(
		col.New(3),
		col.New(3).Add(text.New("Muestras:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})),
		col.New(3).Add(text.New(g.num.Int(run.Count), props.Text{Size: 9, Align: align.Right, Right: 1})),
		col.New(3),
	))
	for _, s := range stats {
		rows = append(rows, row.New(6).Add(
			col.New(3),
			col.New(3).Add(text.New(s.label+":", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})),
			col.New(3).Add(text.New(g.num.Decimal(s.value, 4), props.Text{Size: 9, Align: align.Right, Right: 1})),
			col.New(3),
		))
	}
	return rows
}

// histogramRows: intervalo | barra | frecuencia.
func (g *MarotoReportGenerator) histogramRows(samples []decimal.Decimal) []core.Row {
	bins := Histogram(samples, histogramBins)
	if len(bins) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin muestras registradas.", props.Text{Size: 8, Color: colorGray, Top: 2}),
		))}
	}
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	rows := make([]core.Row, 0, len(bins))
	for _, b := range bins {
		width := 0
		if maxCount > 0 {
			width = b.Count * barWidth / maxCount
		}
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(
				fmt.Sprintf("[%s, %s]", g.num.Decimal(b.From, 2), g.num.Decimal(b.To, 2)),
				props.Text{Size: 7, Align: align.Right, Right: 2},
			)),
			col.New(6).Add(text.New(
				strings.Repeat("|", width),
				props.Text{Size: 7, Color: colorBar},
			)),
			col.New(2).Add(text.New(
				g.num.Int(b.Count),
				props.Text{Size: 7, Align: align.Right, Right: 1},
			)),
		))
	}
	return rows
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Valores muestreados de distribuciones normales acotadas. "+
				"Los resultados son proyecciones y dependen de los parámetros y la semilla usados.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Bin intervalo cerrado del histograma con su frecuencia.
type Bin struct {
	From  decimal.Decimal
	To    decimal.Decimal
	Count int
}

// Histogram agrupa las muestras en n intervalos de igual ancho entre el mínimo y el máximo.
// Si todas las muestras son iguales devuelve un único intervalo.
func Histogram(samples []decimal.Decimal, n int) []Bin {
	if len(samples) == 0 || n <= 0 {
		return nil
	}
	lo, hi := samples[0], samples[0]
	for _, s := range samples[1:] {
		lo = decimal.Min(lo, s)
		hi = decimal.Max(hi, s)
	}
	if lo.Equal(hi) {
		return []Bin{{From: lo, To: hi, Count: len(samples)}}
	}
	width := hi.Sub(lo).Div(decimal.NewFromInt(int64(n)))
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].From = lo.Add(width.Mul(decimal.NewFromInt(int64(i))))
		bins[i].To = lo.Add(width.Mul(decimal.NewFromInt(int64(i + 1))))
	}
	bins[n-1].To = hi
	for _, s := range samples {
		i := int(s.Sub(lo).Div(width).IntPart())
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

func metricLabel(metric string) string {
	switch metric {
	case entity.MetricVariableCost:
		return "costo variable total"
	case entity.MetricStorageCost:
		return "costo de almacenamiento total"
	case entity.MetricEOQ:
		return "lote económico (EOQ)"
	case entity.MetricFixedCost:
		return "costo fijo total"
	default:
		return metric
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
