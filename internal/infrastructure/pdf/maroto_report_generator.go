// Package pdf implementa la generación del reporte de horas trabajadas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Reporte de horas + Período             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  USUARIO: Nombre + email + puntos acumulados                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Inicio | Fin | Duración | Notas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Sesiones / Tiempo total                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 234, Green: 140, Blue: 26}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.TimeReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateTimeReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateTimeReport(_ context.Context, data *usecase.TimeReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de horas trabajadas", true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(userRow(data.User))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range sessionRows(data.Sessions) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y título + período (der).
func headerRow(data *usecase.TimeReportData) core.Row {
	period := "todo el historial"
	if data.From != nil && data.To != nil {
		period = fmt.Sprintf("%s — %s", data.From.Format("02/01/2006"), data.To.Format("02/01/2006"))
	} else if data.From != nil {
		period = "desde " + data.From.Format("02/01/2006")
	} else if data.To != nil {
		period = "hasta " + data.To.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+data.Company.CompanyCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE HORAS TRABAJADAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+period, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// userRow: datos del usuario y sus puntos acumulados.
func userRow(user *entity.User) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("USUARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(user.FirstName+" "+user.LastName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Puntos acumulados: %d",
				user.Email, user.Points,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de sesiones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Inicio", 2, align.Center),
		h("Fin", 2, align.Center),
		h("Duración", 2, align.Right),
		h("Notas", 4, align.Left),
	)
}

// sessionRows: una fila por sesión cerrada.
func sessionRows(sessions []*entity.TimeTracking) []core.Row {
	result := make([]core.Row, 0, len(sessions))
	for _, s := range sessions {
		end := "—"
		if s.EndTime != nil {
			end = s.EndTime.Format("15:04")
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				s.StartTime.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				s.StartTime.Format("15:04"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				end,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatDuration(s.DurationMinutes),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(4).Add(text.New(
				s.Notes,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(data *usecase.TimeReportData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Sesiones:"),
			label("Tiempo total:"),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", len(data.Sessions)), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			grandValue(formatDuration(data.TotalMinutes)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatDuration convierte minutos a "Nh MMm". Ej: 95 → "1h 35m", 40 → "40m".
func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
