// Package authz centraliza la autorización en una sola tabla de decisión
// (rol × capacidad) más la regla de alcance por casa, en lugar de un guard
// por combinación de endpoint.
package authz

import (
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

// Capability es una acción autorizable sobre un tipo de recurso.
type Capability string

const (
	CapManageHouses     Capability = "manage_houses"     // crear/editar/eliminar casas
	CapManageUsers      Capability = "manage_users"      // crear/editar/eliminar usuarios
	CapManageCategories Capability = "manage_categories" // mutar categorías
	CapManageEmployees  Capability = "manage_employees"
	CapManagePayments   Capability = "manage_payments" // crear/firmar/consultar pagos
	CapMutatePayments   Capability = "mutate_payments" // editar/eliminar pagos
	CapManageExpenses   Capability = "manage_expenses"
	CapReadTenantData   Capability = "read_tenant_data" // lecturas dentro del alcance de casa
)

// policy: qué roles tienen cada capacidad. Un rol ausente = denegado.
var policy = map[Capability]map[string]bool{
	CapManageHouses:     {entity.RoleSuperAdmin: true},
	CapManageCategories: {entity.RoleSuperAdmin: true},
	CapManageUsers:      {entity.RoleSuperAdmin: true, entity.RoleAdminHouse: true},
	CapManageEmployees:  {entity.RoleSuperAdmin: true, entity.RoleAdminHouse: true, entity.RoleAdmin: true},
	CapManagePayments:   {entity.RoleSuperAdmin: true, entity.RoleAdminHouse: true, entity.RoleAdmin: true},
	CapMutatePayments:   {entity.RoleSuperAdmin: true, entity.RoleAdminHouse: true},
	CapManageExpenses:   {entity.RoleSuperAdmin: true, entity.RoleAdminHouse: true, entity.RoleAdmin: true},
	CapReadTenantData:   {entity.RoleSuperAdmin: true, entity.RoleAdminHouse: true, entity.RoleAdmin: true},
}

// Allowed indica si el rol tiene la capacidad, sin considerar el alcance de casa.
func Allowed(role string, cap Capability) bool {
	return policy[cap][role]
}

// Decide evalúa rol + capacidad + alcance de casa para un recurso concreto.
//
//   - Capacidad denegada → ErrForbidden (403).
//   - Rol con alcance de casa y recurso de otra casa → ErrNotFound (404):
//     los recursos de otros tenants son indistinguibles de los inexistentes.
func Decide(role, callerHouseID, targetHouseID string, cap Capability) error {
	if !Allowed(role, cap) {
		return domain.ErrForbidden
	}
	if role != entity.RoleSuperAdmin && targetHouseID != callerHouseID {
		return domain.ErrNotFound
	}
	return nil
}

// HouseFilter devuelve el filtro de casa a inyectar en las consultas:
// vacío (sin filtro, visibilidad global) para super_admin, la casa del
// caller para cualquier otro rol.
func HouseFilter(role, callerHouseID string) string {
	if role == entity.RoleSuperAdmin {
		return ""
	}
	return callerHouseID
}

// WriteHouseID resuelve la casa de un registro nuevo: los roles con alcance
// de casa siempre escriben en su propia casa (el house_id del body se
// ignora); solo super_admin puede fijarlo explícitamente.
func WriteHouseID(role, callerHouseID, requested string) string {
	if role == entity.RoleSuperAdmin {
		return requested
	}
	return callerHouseID
}
