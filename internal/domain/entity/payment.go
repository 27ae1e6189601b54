package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pago.
// pending → signed → completed en la práctica, pero las transiciones no se
// restringen: un pago puede completarse sin firma digital (firma en papel)
// y puede re-firmarse.
const (
	PaymentPending   = "pending"
	PaymentSigned    = "signed"
	PaymentCompleted = "completed"
)

// Payment representa un pago de compensación a una empleada en una fecha.
// TotalAmount siempre cumple: BaseSalary + Bonuses − Deductions.
type Payment struct {
	ID                string
	HouseID           string
	EmployeeID        string
	EmployerID        string // usuario que creó el pago
	PaymentDate       time.Time
	BaseSalary        decimal.Decimal
	Bonuses           decimal.Decimal
	Deductions        decimal.Decimal
	TotalAmount       decimal.Decimal
	Notes             string
	Status            string // pending, signed, completed
	DigitalSignature  string // imagen base64, con o sin prefijo data:image/...;base64,
	SignedDocumentURL string // referencia al archivo firmado subido
	SignedAt          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Relaciones cargadas para PDF y notificación.
	Employee *Employee
	Employer *User
}

// ComputeTotal recalcula el total a partir de los montos almacenados.
// Los totales negativos (deducciones mayores al salario) se permiten.
func (p *Payment) ComputeTotal() {
	p.TotalAmount = p.BaseSalary.Add(p.Bonuses).Sub(p.Deductions)
}
