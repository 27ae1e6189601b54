package entity

import "time"

// Roles válidos para User, de mayor a menor privilegio.
const (
	RoleSuperAdmin = "super_admin" // visibilidad y gestión cross-tenant
	RoleAdminHouse = "admin_house" // administra una sola casa
	RoleAdmin      = "admin"       // operador de una casa
)

// User representa una cuenta operadora del sistema.
// HouseID está vacío solo para super_admin.
type User struct {
	ID           string
	HouseID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // super_admin, admin_house, admin
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
