package payroll

import (
	"context"

	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

// ReceiptPDFGenerator renderiza el comprobante de pago como PDF.
// El pago debe venir con Employee y Employer cargados.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, payment *entity.Payment) ([]byte, error)
}

// DocumentStorage almacena documentos firmados subidos (disco local o S3).
// Devuelve la referencia persistible del documento (nombre/clave).
type DocumentStorage interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}
