package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest entrada para crear un pago.
// BaseSalary nil = usar el salario base actual de la empleada.
type CreatePaymentRequest struct {
	EmployeeID  string           `json:"employee_id" validate:"required,uuid"`
	PaymentDate time.Time        `json:"payment_date" validate:"required"`
	BaseSalary  *decimal.Decimal `json:"base_salary"`
	Bonuses     decimal.Decimal  `json:"bonuses"`
	Deductions  decimal.Decimal  `json:"deductions"`
	Notes       string           `json:"notes"`
}

// UpdatePaymentRequest campos opcionales a actualizar. BaseSalary es
// inmutable después de la creación; cambiar bonos o deducciones recalcula
// el total sobre el salario base almacenado.
type UpdatePaymentRequest struct {
	PaymentDate *time.Time       `json:"payment_date"`
	Bonuses     *decimal.Decimal `json:"bonuses"`
	Deductions  *decimal.Decimal `json:"deductions"`
	Notes       *string          `json:"notes"`
}

// SignPaymentRequest firma digital: imagen raster en base64
// (con o sin prefijo data:image/...;base64,).
type SignPaymentRequest struct {
	DigitalSignature string `json:"digital_signature" validate:"required"`
}

// PaymentResponse salida de un pago con sus relaciones.
type PaymentResponse struct {
	ID                string            `json:"id"`
	HouseID           string            `json:"house_id"`
	EmployeeID        string            `json:"employee_id"`
	EmployerID        string            `json:"employer_id"`
	PaymentDate       time.Time         `json:"payment_date"`
	BaseSalary        decimal.Decimal   `json:"base_salary"`
	Bonuses           decimal.Decimal   `json:"bonuses"`
	Deductions        decimal.Decimal   `json:"deductions"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	Notes             string            `json:"notes,omitempty"`
	Status            string            `json:"status"`
	SignedDocumentURL string            `json:"signed_document_url,omitempty"`
	SignedAt          *time.Time        `json:"signed_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Employee          *EmployeeResponse `json:"employee,omitempty"`
	Employer          *UserResponse     `json:"employer,omitempty"`
}
