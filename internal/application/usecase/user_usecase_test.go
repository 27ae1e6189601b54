package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

const (
	casaUno = "11111111-1111-1111-1111-111111111111"
	casaDos = "22222222-2222-2222-2222-222222222222"
)

// memUserRepo repo en memoria con la misma semántica de alcance que el real:
// houseID vacío = sin filtro.
type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (m *memUserRepo) Create(u *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(id, houseID string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if houseID != "" && u.HouseID != houseID {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindActiveByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Update(u *entity.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) List(houseID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if houseID == "" || u.HouseID == houseID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) ListActiveByHouse(houseID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if u.IsActive && (houseID == "" || u.HouseID == houseID) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) Delete(id string) error {
	delete(m.users, id)
	return nil
}

func seedUser(repo *memUserRepo, id, houseID, email, role string) *entity.User {
	u := &entity.User{
		ID:       id,
		HouseID:  houseID,
		Email:    email,
		Role:     role,
		FullName: "Usuario " + email,
		IsActive: true,
	}
	_ = repo.Create(u)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_AdminHouseIgnoraHouseDelBody(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{
		Email:    "nuevo@casa.test",
		Password: "secreto1",
		FullName: "Nuevo Admin",
		HouseID:  casaDos, // intento de escribir en otra casa
	}, entity.RoleAdminHouse, casaUno)

	require.NoError(t, err)
	assert.Equal(t, casaUno, out.HouseID,
		"la casa del nuevo usuario sale de la sesión del caller, no del body")
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestUserCreate_SuperAdminFijaCasaDelBody(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{
		Email:    "nuevo@casa.test",
		Password: "secreto1",
		FullName: "Nuevo Admin",
		HouseID:  casaDos,
	}, entity.RoleSuperAdmin, "")

	require.NoError(t, err)
	assert.Equal(t, casaDos, out.HouseID)
}

func TestUserCreate_PasswordQuedaHasheada(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{
		Email:    "nuevo@casa.test",
		Password: "secreto1",
		FullName: "Nuevo Admin",
	}, entity.RoleAdminHouse, casaUno)
	require.NoError(t, err)

	stored := repo.users[out.ID]
	assert.NotEqual(t, "secreto1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))
}

func TestUserDelete_PropiaCuentaProhibida(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	caller := seedUser(repo, "aaaa", casaUno, "yo@casa.test", entity.RoleSuperAdmin)

	err := uc.Delete(caller.ID, caller.ID, entity.RoleSuperAdmin, "")
	assert.ErrorIs(t, err, domain.ErrSelfDelete,
		"ni super_admin puede eliminar su propia cuenta")
	assert.Contains(t, repo.users, caller.ID)
}

func TestUserDelete_OtraCasaInvisible(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	target := seedUser(repo, "bbbb", casaDos, "otro@casa.test", entity.RoleAdmin)

	err := uc.Delete(target.ID, "caller-id", entity.RoleAdminHouse, casaUno)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un usuario de otra casa es indistinguible de inexistente")
	assert.Contains(t, repo.users, target.ID)
}

func TestUserUpdate_ReasignarCasaSoloSuperAdmin(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	target := seedUser(repo, "cccc", casaUno, "target@casa.test", entity.RoleAdmin)

	nueva := casaDos
	out, err := uc.Update(target.ID, dto.UpdateUserRequest{HouseID: &nueva}, entity.RoleAdminHouse, casaUno)
	require.NoError(t, err)
	assert.Equal(t, casaUno, out.HouseID, "admin_house no puede mover usuarios de casa")

	out, err = uc.Update(target.ID, dto.UpdateUserRequest{HouseID: &nueva}, entity.RoleSuperAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, casaDos, out.HouseID)
}

func TestUserList_EscopadoPorCasa(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	seedUser(repo, "u1", casaUno, "a@casa.test", entity.RoleAdmin)
	seedUser(repo, "u2", casaUno, "b@casa.test", entity.RoleAdmin)
	seedUser(repo, "u3", casaDos, "c@casa.test", entity.RoleAdmin)

	out, err := uc.List(entity.RoleAdminHouse, casaUno, 20, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = uc.List(entity.RoleSuperAdmin, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, out, 3, "super_admin ve todas las casas")
}
