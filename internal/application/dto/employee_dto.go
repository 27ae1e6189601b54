package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para crear una empleada.
// HouseID solo se respeta si el caller es super_admin.
type CreateEmployeeRequest struct {
	HouseID    string          `json:"house_id" validate:"omitempty,uuid"`
	FullName   string          `json:"full_name" validate:"required,max=200"`
	DocumentID string          `json:"document_id" validate:"required,max=50"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Position   string          `json:"position"`
	BaseSalary decimal.Decimal `json:"base_salary"`
}

// UpdateEmployeeRequest campos opcionales a actualizar.
type UpdateEmployeeRequest struct {
	FullName   *string          `json:"full_name" validate:"omitempty,max=200"`
	DocumentID *string          `json:"document_id" validate:"omitempty,max=50"`
	Phone      *string          `json:"phone"`
	Address    *string          `json:"address"`
	Position   *string          `json:"position"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
	IsActive   *bool            `json:"is_active"`
}

// EmployeeResponse salida de una empleada.
type EmployeeResponse struct {
	ID         string          `json:"id"`
	HouseID    string          `json:"house_id"`
	FullName   string          `json:"full_name"`
	DocumentID string          `json:"document_id"`
	Phone      string          `json:"phone,omitempty"`
	Address    string          `json:"address,omitempty"`
	Position   string          `json:"position,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
