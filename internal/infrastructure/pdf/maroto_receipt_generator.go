// Package pdf implementa la generación del comprobante de pago en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: COMPROBANTE DE PAGO + número de comprobante         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADOR: Nombre / Email                                   │
//	│  EMPLEADA: Nombre / Documento / Cargo                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONCEPTOS: Salario base / Bonificaciones / Deducciones      │
//	│  TOTAL                                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS (si hay) + FIRMA (imagen o línea en blanco)           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jbejarano/portal-casas-api/internal/application/payroll"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

var _ payroll.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa payroll.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el comprobante y devuelve sus bytes.
// El pago debe venir con Employee y Employer cargados.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, payment *entity.Payment) ([]byte, error) {
	if payment.Employee == nil || payment.Employer == nil {
		return nil, fmt.Errorf("pdf: pago sin empleada o empleador cargado")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Comprobante de Pago", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(payment)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRows(payment)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(conceptRows(payment)...)

	if payment.Notes != "" {
		m.AddRows(notesRows(payment.Notes)...)
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(signatureRows(payment)...)

	generado := time.Now().Format("02/01/2006 15:04")
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Generado el: "+generado, props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 3,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows(payment *entity.Payment) []core.Row {
	return []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New("COMPROBANTE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 18, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New("Comprobante #"+payment.ID, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
		)),
	}
}

// partyRows: empleador (izq) y empleada (der) en dos columnas.
func partyRows(payment *entity.Payment) []core.Row {
	employer := payment.Employer
	employee := payment.Employee

	left := []core.Component{
		text.New("EMPLEADOR", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
		text.New("Nombre: "+employer.FullName, props.Text{Size: 9, Top: 7}),
		text.New("Email: "+employer.Email, props.Text{Size: 9, Top: 12, Color: colorGray}),
	}

	right := []core.Component{
		text.New("EMPLEADA", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
		text.New("Nombre: "+employee.FullName, props.Text{Size: 9, Top: 7}),
		text.New("Documento: "+employee.DocumentID, props.Text{Size: 9, Top: 12, Color: colorGray}),
	}
	if employee.Position != "" {
		right = append(right, text.New("Cargo: "+employee.Position, props.Text{
			Size: 9, Top: 17, Color: colorGray,
		}))
	}

	return []core.Row{
		row.New(24).Add(col.New(6).Add(left...), col.New(6).Add(right...)),
		row.New(8).Add(col.New(12).Add(
			text.New("Fecha de pago: "+payment.PaymentDate.Format("02/01/2006"), props.Text{
				Size: 9, Top: 2,
			}),
		)),
	}
}

// conceptRows: conceptos del pago. Bonificaciones y deducciones solo
// aparecen cuando son distintas de cero.
func conceptRows(payment *entity.Payment) []core.Row {
	concept := func(label, value string) core.Row {
		return row.New(7).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 10, Top: 1, Left: 2})),
			col.New(4).Add(text.New(value, props.Text{Size: 10, Top: 1, Align: align.Right, Right: 2})),
		)
	}

	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("DETALLES DEL PAGO", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
		)),
		concept("Salario base:", "$"+formatMoney(payment.BaseSalary.StringFixed(2))),
	}

	if payment.Bonuses.IsPositive() {
		rows = append(rows, concept("Bonificaciones:", "$"+formatMoney(payment.Bonuses.StringFixed(2))))
	}
	if payment.Deductions.IsPositive() {
		rows = append(rows, concept("Deducciones:", "-$"+formatMoney(payment.Deductions.StringFixed(2))))
	}

	rows = append(rows,
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}),
		row.New(9).Add(
			col.New(8).Add(text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 1, Left: 2, Color: colorPrimary,
			})),
			col.New(4).Add(text.New("$"+formatMoney(payment.TotalAmount.StringFixed(2)), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 1, Align: align.Right,
				Right: 2, Color: colorPrimary,
			})),
		),
	)
	return rows
}

func notesRows(notes string) []core.Row {
	return []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("Notas:", props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 9, Top: 1, Color: colorGray}),
		)),
	}
}

// signatureRows: firma digital como imagen si existe; si no, línea en
// blanco para firma manuscrita. Si la imagen no decodifica, cae al texto
// "Firmado digitalmente" con la fecha.
func signatureRows(payment *entity.Payment) []core.Row {
	if payment.DigitalSignature == "" {
		return []core.Row{
			row.New(8).Add(col.New(12).Add(
				text.New("_________________________", props.Text{Size: 10, Align: align.Center, Top: 2}),
			)),
			row.New(6).Add(col.New(12).Add(
				text.New("Firma de la empleada", props.Text{Size: 9, Align: align.Center, Top: 1}),
			)),
		}
	}

	imgBytes, ext, err := decodeSignature(payment.DigitalSignature)
	if err != nil {
		rows := []core.Row{
			row.New(7).Add(col.New(12).Add(
				text.New("Firmado digitalmente", props.Text{Size: 10, Align: align.Center, Top: 2}),
			)),
		}
		if payment.SignedAt != nil {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New("Fecha de firma: "+payment.SignedAt.Format("02/01/2006"), props.Text{
					Size: 8, Align: align.Center, Color: colorGray,
				}),
			)))
		}
		return rows
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Firma:", props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}),
		)),
		row.New(25).Add(
			col.New(5).Add(image.NewFromBytes(imgBytes, ext, props.Rect{Percent: 90})),
			col.New(7),
		),
	}
	if payment.SignedAt != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Firmado digitalmente el: "+payment.SignedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// decodeSignature decodifica la firma base64, aceptando el prefijo
// data:image/...;base64, que envía el canvas del frontend.
func decodeSignature(signature string) ([]byte, extension.Type, error) {
	ext := extension.Png
	data := signature
	if strings.HasPrefix(data, "data:image/") {
		rest := strings.TrimPrefix(data, "data:image/")
		if strings.HasPrefix(rest, "jpeg") || strings.HasPrefix(rest, "jpg") {
			ext = extension.Jpg
		}
		if i := strings.Index(data, ","); i >= 0 {
			data = data[i+1:]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, ext, fmt.Errorf("decodificar firma: %w", err)
	}
	return raw, ext, nil
}

// formatMoney inserta puntos de miles en un string numérico con dos
// decimales separados por punto. Ej: "1000000.00" → "1.000.000.00"
// se evita convirtiendo el separador decimal a coma: "1.000.000,00".
func formatMoney(s string) string {
	intPart := s
	decPart := ""
	if i := strings.LastIndex(s, "."); i >= 0 {
		intPart, decPart = s[:i], s[i+1:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf)
	if decPart != "" {
		out += "," + decPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
