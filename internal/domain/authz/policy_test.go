package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/authz"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

func TestAllowed_TablaDeDecision(t *testing.T) {
	cases := []struct {
		role string
		cap  authz.Capability
		want bool
	}{
		{entity.RoleSuperAdmin, authz.CapManageHouses, true},
		{entity.RoleSuperAdmin, authz.CapManageCategories, true},
		{entity.RoleSuperAdmin, authz.CapManageUsers, true},
		{entity.RoleSuperAdmin, authz.CapManagePayments, true},

		{entity.RoleAdminHouse, authz.CapManageHouses, false},
		{entity.RoleAdminHouse, authz.CapManageCategories, false},
		{entity.RoleAdminHouse, authz.CapManageUsers, true},
		{entity.RoleAdminHouse, authz.CapManagePayments, true},
		{entity.RoleAdminHouse, authz.CapMutatePayments, true},
		{entity.RoleAdminHouse, authz.CapManageExpenses, true},

		{entity.RoleAdmin, authz.CapManageHouses, false},
		{entity.RoleAdmin, authz.CapManageUsers, false},
		{entity.RoleAdmin, authz.CapManagePayments, true},
		{entity.RoleAdmin, authz.CapMutatePayments, false},
		{entity.RoleAdmin, authz.CapManageEmployees, true},

		{"", authz.CapReadTenantData, false},
		{"desconocido", authz.CapManagePayments, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, authz.Allowed(tc.role, tc.cap),
			"rol=%q cap=%q", tc.role, tc.cap)
	}
}

func TestDecide_CapacidadDenegada_RetornaForbidden(t *testing.T) {
	err := authz.Decide(entity.RoleAdmin, "casa-1", "casa-1", authz.CapManageUsers)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un recurso de otra casa debe parecer inexistente, nunca prohibido:
// 404 en vez de 403 para no filtrar la existencia de otros tenants.
func TestDecide_OtraCasa_RetornaNotFound(t *testing.T) {
	err := authz.Decide(entity.RoleAdminHouse, "casa-1", "casa-2", authz.CapManageUsers)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecide_SuperAdminCruzaCasas(t *testing.T) {
	assert.NoError(t, authz.Decide(entity.RoleSuperAdmin, "", "casa-2", authz.CapManagePayments))
}

func TestDecide_MismaCasa_Permite(t *testing.T) {
	assert.NoError(t, authz.Decide(entity.RoleAdmin, "casa-1", "casa-1", authz.CapManagePayments))
}

func TestHouseFilter(t *testing.T) {
	assert.Equal(t, "", authz.HouseFilter(entity.RoleSuperAdmin, "casa-1"),
		"super_admin consulta sin filtro")
	assert.Equal(t, "casa-1", authz.HouseFilter(entity.RoleAdminHouse, "casa-1"))
	assert.Equal(t, "casa-1", authz.HouseFilter(entity.RoleAdmin, "casa-1"))
}

// El house_id del body solo se respeta para super_admin; los demás roles
// siempre escriben en su propia casa.
func TestWriteHouseID_IgnoraBodyParaRolesConAlcance(t *testing.T) {
	assert.Equal(t, "casa-2", authz.WriteHouseID(entity.RoleSuperAdmin, "", "casa-2"))
	assert.Equal(t, "casa-1", authz.WriteHouseID(entity.RoleAdminHouse, "casa-1", "casa-2"))
	assert.Equal(t, "casa-1", authz.WriteHouseID(entity.RoleAdmin, "casa-1", "casa-2"))
}
