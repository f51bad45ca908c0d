// Package pdf implementa la generación del resumen de incorporación en PDF
// que el cliente descarga al completar el proceso.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa  │  N° Registro + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO: paso actual / estado / aprobaciones                │
//	│  PLAN: nombre + precio + anticipo + saldo                    │
//	│  UBICACIÓN: provincia / distrito / secretaría divisional    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: documentos adjuntos (tipo | nombre | fecha)         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: vencimiento de secretaría + QR de verificación     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.SummaryPDFGenerator = (*MarotoSummaryGenerator)(nil)

// MarotoSummaryGenerator implementa ports.SummaryPDFGenerator usando Maroto v2.
type MarotoSummaryGenerator struct{}

// NewMarotoSummaryGenerator construye el generador.
func NewMarotoSummaryGenerator() *MarotoSummaryGenerator { return &MarotoSummaryGenerator{} }

// GenerateSummaryPDF genera el PDF y devuelve sus bytes. pkg puede ser nil si
// el registro referencia un plan retirado del catálogo.
func (g *MarotoSummaryGenerator) GenerateSummaryPDF(
	_ context.Context,
	reg *entity.Registration,
	pkg *entity.Package,
	files []*entity.StoredFile,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Incorporación", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(reg))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statusRow(reg))
	m.AddRows(packageRow(pkg, reg.SelectedPackage))
	m.AddRows(locationRow(reg))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(filesHeaderRow())
	for _, r := range fileRows(files) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(reg) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa (izq) y N° de registro + fecha (der).
func headerRow(reg *entity.Registration) core.Row {
	name := nonEmpty(reg.CompanyName, "Unnamed Company")
	fecha := reg.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Solicitante: "+nonEmpty(reg.UserEmail, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE INCORPORACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(reg.ID, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Iniciado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// statusRow: paso actual, estado y aprobaciones.
func statusRow(reg *entity.Registration) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ESTADO DEL PROCESO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Paso: %s   |   Estado: %s", reg.CurrentStep, reg.Status), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Pago aprobado: %s   |   Documentos aprobados: %s",
				siNo(reg.PaymentApproved), siNo(reg.DocumentsApproved),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// packageRow: plan seleccionado con montos, o el id crudo si el plan ya no existe.
func packageRow(pkg *entity.Package, rawID string) core.Row {
	var detail string
	name := rawID
	if pkg != nil {
		name = pkg.Name
		detail = fmt.Sprintf("Precio: %s   |   Anticipo: %s   |   Saldo: %s",
			pkg.Price.StringFixed(2), pkg.AdvanceAmount.StringFixed(2), pkg.BalanceAmount.StringFixed(2))
	}
	if name == "" {
		name = "Standard"
	}

	return row.New(12).Add(
		col.New(12).Add(
			text.New("PLAN CONTRATADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(detail, "Montos no disponibles"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// locationRow: ubicación declarada en los datos de la empresa.
func locationRow(reg *entity.Registration) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("UBICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Provincia: %s   |   Distrito: %s   |   Secretaría: %s",
				nonEmpty(reg.Province, "—"),
				nonEmpty(reg.District, "—"),
				nonEmpty(reg.DivisionalSecretariat, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// filesHeaderRow: cabecera de la tabla de documentos adjuntos.
func filesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 3, align.Left),
		h("Documento", 6, align.Left),
		h("Subido", 3, align.Right),
	)
}

// fileRows: una fila por documento adjunto.
func fileRows(files []*entity.StoredFile) []core.Row {
	if len(files) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin documentos adjuntos.", props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorGray,
			}),
		))}
	}
	result := make([]core.Row, 0, len(files))
	for _, f := range files {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(f.Kind, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(f.FileName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(
				f.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: vencimiento de secretaría + QR con el id del registro.
func footerRows(reg *entity.Registration) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RENOVACIÓN DE SECRETARÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	venc := "No asignado"
	if reg.ExpireDate != nil {
		venc = reg.ExpireDate.Format("02/01/2006")
		if reg.IsExpired || reg.ExpireDate.Before(time.Now()) {
			venc += " (VENCIDO)"
		}
	}
	rows = append(rows, row.New(5).Add(col.New(12).Add(
		text.New("Vencimiento: "+venc, props.Text{Size: 8, Top: 1, Color: colorGray}),
	)))

	rows = append(rows, row.New(3))
	rows = append(rows, row.New(40).Add(
		col.New(4).Add(code.NewQr(reg.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanea el código QR para consultar\nel estado de este registro.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("CERTIFICADO DE RESUMEN\nDE INCORPORACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 20,
				Left: 3, Color: colorPrimary,
			}),
		),
	))

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este documento resume el estado del proceso de incorporación a la fecha de descarga. "+
				"No reemplaza los certificados oficiales emitidos por el registro mercantil.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func siNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
