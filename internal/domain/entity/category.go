package entity

import "time"

// Category representa una etiqueta para gastos de mercado.
type Category struct {
	ID          string
	HouseID     string
	Name        string // único global
	Description string
	Color       string // hex para UI, ej. #667eea
	Icon        string // emoji o icono, ej. 🛒
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
