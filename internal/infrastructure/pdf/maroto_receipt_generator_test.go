package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

// PNG de 1x1 px, suficiente para ejercitar el camino de firma como imagen.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func testPayment() *entity.Payment {
	return &entity.Payment{
		ID:          "pago-0001",
		PaymentDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		BaseSalary:  decimal.RequireFromString("1300000"),
		Bonuses:     decimal.RequireFromString("150000"),
		Deductions:  decimal.RequireFromString("50000"),
		TotalAmount: decimal.RequireFromString("1400000"),
		Status:      entity.PaymentPending,
		Employee: &entity.Employee{
			FullName:   "María Gómez",
			DocumentID: "52123456",
			Position:   "Empleada doméstica",
		},
		Employer: &entity.User{
			FullName: "Juan Bejarano",
			Email:    "juan@casa.test",
		},
	}
}

func TestGenerateReceiptPDF_SinFirma(t *testing.T) {
	g := NewMarotoReceiptGenerator()

	out, err := g.GenerateReceiptPDF(context.Background(), testPayment())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "la salida debe ser un PDF válido")
}

func TestGenerateReceiptPDF_ConFirmaBase64(t *testing.T) {
	g := NewMarotoReceiptGenerator()
	p := testPayment()
	firmado := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	p.Status = entity.PaymentSigned
	p.DigitalSignature = "data:image/png;base64," + tinyPNG
	p.SignedAt = &firmado

	out, err := g.GenerateReceiptPDF(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

// Una firma con base64 corrupto no debe romper la generación: cae al texto
// "Firmado digitalmente".
func TestGenerateReceiptPDF_FirmaCorruptaNoRompe(t *testing.T) {
	g := NewMarotoReceiptGenerator()
	p := testPayment()
	p.DigitalSignature = "data:image/png;base64,%%%no-es-base64%%%"

	out, err := g.GenerateReceiptPDF(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateReceiptPDF_SinRelacionesCargadas(t *testing.T) {
	g := NewMarotoReceiptGenerator()
	p := testPayment()
	p.Employee = nil

	_, err := g.GenerateReceiptPDF(context.Background(), p)
	assert.Error(t, err)
}

func TestDecodeSignature(t *testing.T) {
	raw, ext, err := decodeSignature("data:image/jpeg;base64," + tinyPNG)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.EqualValues(t, "jpg", ext)

	_, ext, err = decodeSignature(tinyPNG) // sin prefijo data:
	require.NoError(t, err)
	assert.EqualValues(t, "png", ext)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1.300.000,00", formatMoney("1300000.00"))
	assert.Equal(t, "950,50", formatMoney("950.50"))
	assert.Equal(t, "-120.000,00", formatMoney("-120000.00"))
	assert.Equal(t, "0,00", formatMoney("0.00"))
}
