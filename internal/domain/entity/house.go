package entity

import "time"

// House representa una casa: el tenant raíz del sistema. Todo dato de dominio
// (usuarios, empleadas, pagos, gastos, categorías) pertenece a exactamente una casa.
type House struct {
	ID          string
	Name        string // único global, ej. "Casa de JaymarM"
	Slug        string // único global, ej. "casa-jaymar"
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HouseCounts conteos de entidades asociadas a una casa. Usado tanto para el
// listado con estadísticas como para el guard referencial de borrado.
type HouseCounts struct {
	Users      int
	Employees  int
	Payments   int
	Expenses   int
	Categories int
}

// HasData indica si la casa tiene algún dato asociado (bloquea el borrado).
func (c HouseCounts) HasData() bool {
	return c.Users > 0 || c.Employees > 0 || c.Payments > 0 || c.Expenses > 0 || c.Categories > 0
}
