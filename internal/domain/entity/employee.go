package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa una empleada que recibe pagos.
// BaseSalary es el salario por defecto al crear un pago si no se indica otro.
type Employee struct {
	ID         string
	HouseID    string
	FullName   string
	DocumentID string // cédula, única global
	Phone      string
	Address    string
	Position   string
	BaseSalary decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
