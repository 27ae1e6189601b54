package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbejarano/portal-casas-api/internal/application/auth"
	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (m *memUserRepo) Create(u *entity.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(id, houseID string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
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

func (m *memUserRepo) List(string, int, int) ([]*entity.User, error)    { return nil, nil }
func (m *memUserRepo) ListActiveByHouse(string) ([]*entity.User, error) { return nil, nil }
func (m *memUserRepo) Delete(string) error                              { return nil }

func seedActiveUser(repo *memUserRepo, password string) *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &entity.User{
		ID:           testUserID,
		Email:        "admin@casa.test",
		PasswordHash: string(hash),
		FullName:     "Admin de Prueba",
		Role:         entity.RoleAdminHouse,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	_ = repo.Create(u)
	return u
}

func newUseCase(repo *memUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "portal-casas-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newMemUserRepo()
	seedActiveUser(repo, "secreto1")
	uc := newUseCase(repo)

	_, err := uc.Login(dto.LoginRequest{Email: "admin@casa.test", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Cuenta inexistente y password incorrecta producen el mismo error: no se
// puede enumerar cuentas desde el login.
func TestLogin_CuentaInexistente_MismoError(t *testing.T) {
	uc := newUseCase(newMemUserRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@casa.test", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EntregaTokenYUsuario(t *testing.T) {
	repo := newMemUserRepo()
	seedActiveUser(repo, "secreto1")
	uc := newUseCase(repo)

	out, err := uc.Login(dto.LoginRequest{Email: "admin@casa.test", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "admin@casa.test", out.User.Email)
}

// La contraseña actual incorrecta es un 403, no un 401: la sesión es válida,
// lo que falla es la confirmación.
func TestChangePassword_ActualIncorrecta_Forbidden(t *testing.T) {
	repo := newMemUserRepo()
	u := seedActiveUser(repo, "secreto1")
	uc := newUseCase(repo)

	err := uc.ChangePassword(u.ID, "equivocada", "nueva-clave")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword_ActualizaElHash(t *testing.T) {
	repo := newMemUserRepo()
	u := seedActiveUser(repo, "secreto1")
	uc := newUseCase(repo)

	require.NoError(t, uc.ChangePassword(u.ID, "secreto1", "nueva-clave"))

	stored := repo.users[u.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nueva-clave")))
}
