package payroll

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jbejarano/portal-casas-api/internal/application/auth"
	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/notify"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/authz"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

// Extensiones aceptadas para el documento firmado.
var allowedDocumentExts = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true,
}

// PaymentUseCase ciclo de vida de pagos: creación con cálculo de totales,
// firma digital, subida del documento firmado y comprobante PDF.
type PaymentUseCase struct {
	repo         repository.PaymentRepository
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	pdf          ReceiptPDFGenerator
	storage      DocumentStorage
	notifier     notify.Notifier
}

// NewPaymentUseCase construye el caso de uso con sus puertos.
func NewPaymentUseCase(
	repo repository.PaymentRepository,
	employeeRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
	pdf ReceiptPDFGenerator,
	storage DocumentStorage,
	notifier notify.Notifier,
) *PaymentUseCase {
	return &PaymentUseCase{
		repo:         repo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		pdf:          pdf,
		storage:      storage,
		notifier:     notifier,
	}
}

// Create crea un pago en estado pending. Si no viene salario base se usa el
// de la empleada. Tras guardar se recarga el grafo completo (empleada +
// empleador): PDF y notificación lo necesitan; fallar esa recarga es un
// error interno, no de validación.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest, callerUserID, callerRole, callerHouseID string) (*dto.PaymentResponse, error) {
	employee, err := uc.employeeRepo.GetByID(in.EmployeeID, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}

	baseSalary := employee.BaseSalary
	if in.BaseSalary != nil {
		baseSalary = *in.BaseSalary
	}
	now := time.Now()
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		HouseID:     employee.HouseID,
		EmployeeID:  employee.ID,
		EmployerID:  callerUserID,
		PaymentDate: in.PaymentDate,
		BaseSalary:  baseSalary,
		Bonuses:     in.Bonuses,
		Deductions:  in.Deductions,
		Notes:       in.Notes,
		Status:      entity.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	payment.ComputeTotal()

	if err := uc.repo.Create(payment); err != nil {
		return nil, err
	}
	reloaded, err := uc.repo.GetByID(payment.ID, "")
	if err != nil {
		return nil, err
	}
	if reloaded == nil {
		return nil, domain.ErrReloadFailed
	}

	recipients, err := uc.userRepo.ListActiveByHouse(reloaded.HouseID)
	if err != nil {
		return nil, err
	}
	if err := uc.notifier.PaymentCreated(ctx, reloaded, recipients); err != nil {
		// El pago ya quedó persistido; no hay rollback compensatorio.
		return nil, fmt.Errorf("notificar pago creado: %w", err)
	}
	return ToPaymentResponse(reloaded), nil
}

// List lista los pagos del alcance del caller, más recientes primero.
func (uc *PaymentUseCase) List(callerRole, callerHouseID string, limit, offset int) ([]*dto.PaymentResponse, error) {
	payments, err := uc.repo.List(authz.HouseFilter(callerRole, callerHouseID), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, ToPaymentResponse(p))
	}
	return out, nil
}

// GetByID obtiene un pago del alcance. (nil, nil) si no existe o es de otra casa.
func (uc *PaymentUseCase) GetByID(id, callerRole, callerHouseID string) (*dto.PaymentResponse, error) {
	payment, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, nil
	}
	return ToPaymentResponse(payment), nil
}

// Update actualiza un pago. El salario base es inmutable: cambiar bonos o
// deducciones recalcula el total sobre el salario base almacenado.
func (uc *PaymentUseCase) Update(id string, in dto.UpdatePaymentRequest, callerRole, callerHouseID string) (*dto.PaymentResponse, error) {
	payment, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if in.PaymentDate != nil {
		payment.PaymentDate = *in.PaymentDate
	}
	if in.Notes != nil {
		payment.Notes = *in.Notes
	}
	if in.Bonuses != nil || in.Deductions != nil {
		if in.Bonuses != nil {
			payment.Bonuses = *in.Bonuses
		}
		if in.Deductions != nil {
			payment.Deductions = *in.Deductions
		}
		payment.ComputeTotal()
	}
	payment.UpdatedAt = time.Now()
	if err := uc.repo.Update(payment); err != nil {
		return nil, err
	}
	return ToPaymentResponse(payment), nil
}

// Delete elimina un pago del alcance.
func (uc *PaymentUseCase) Delete(id, callerRole, callerHouseID string) error {
	payment, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Sign registra la firma digital (imagen base64) y pasa el pago a signed.
// No se exige que el caller sea el empleador de registro, y un pago
// completed puede re-firmarse (firma en papel vs firma en pantalla).
func (uc *PaymentUseCase) Sign(id, digitalSignature, callerRole, callerHouseID string) (*dto.PaymentResponse, error) {
	payment, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	payment.DigitalSignature = digitalSignature
	payment.Status = entity.PaymentSigned
	payment.SignedAt = &now
	payment.UpdatedAt = now
	if err := uc.repo.Update(payment); err != nil {
		return nil, err
	}
	return ToPaymentResponse(payment), nil
}

// UploadSigned guarda el documento firmado (pdf/jpg/jpeg/png) bajo un nombre
// aleatorio y pasa el pago a completed, re-estampando SignedAt. La transición
// directa desde pending es válida.
func (uc *PaymentUseCase) UploadSigned(ctx context.Context, id, originalFilename, contentType string, data []byte, callerRole, callerHouseID string) (*dto.PaymentResponse, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedDocumentExts[ext] {
		return nil, domain.ErrInvalidInput
	}
	payment, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}

	name, err := randomFilename(ext)
	if err != nil {
		return nil, err
	}
	ref, err := uc.storage.Save(ctx, name, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("guardar documento firmado: %w", err)
	}

	now := time.Now()
	payment.SignedDocumentURL = ref
	payment.Status = entity.PaymentCompleted
	payment.SignedAt = &now
	payment.UpdatedAt = now
	if err := uc.repo.Update(payment); err != nil {
		return nil, err
	}
	return ToPaymentResponse(payment), nil
}

// ReceiptPDF genera el comprobante PDF del pago.
func (uc *PaymentUseCase) ReceiptPDF(ctx context.Context, id, callerRole, callerHouseID string) ([]byte, error) {
	payment, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateReceiptPDF(ctx, payment)
}

// randomFilename genera un nombre hex de 32 caracteres con la extensión dada.
func randomFilename(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}

// ToPaymentResponse proyección de un pago con sus relaciones.
func ToPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:                p.ID,
		HouseID:           p.HouseID,
		EmployeeID:        p.EmployeeID,
		EmployerID:        p.EmployerID,
		PaymentDate:       p.PaymentDate,
		BaseSalary:        p.BaseSalary,
		Bonuses:           p.Bonuses,
		Deductions:        p.Deductions,
		TotalAmount:       p.TotalAmount,
		Notes:             p.Notes,
		Status:            p.Status,
		SignedDocumentURL: p.SignedDocumentURL,
		SignedAt:          p.SignedAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Employee:          usecase.ToEmployeeResponse(p.Employee),
		Employer:          auth.ToUserResponse(p.Employer),
	}
}
