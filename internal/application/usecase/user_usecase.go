package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbejarano/portal-casas-api/internal/application/auth"
	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/authz"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios operadores, con alcance por casa.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario con rol admin. La casa del nuevo usuario se toma de
// la sesión del caller; solo super_admin puede fijarla en el body.
func (uc *UserUseCase) Create(in dto.CreateUserRequest, callerRole, callerHouseID string) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		HouseID:      authz.WriteHouseID(callerRole, callerHouseID, in.HouseID),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista los usuarios del alcance del caller.
func (uc *UserUseCase) List(callerRole, callerHouseID string, limit, offset int) ([]*dto.UserResponse, error) {
	users, err := uc.repo.List(authz.HouseFilter(callerRole, callerHouseID), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario dentro del alcance del caller.
// Fuera de alcance = (nil, nil): indistinguible de inexistente.
func (uc *UserUseCase) GetByID(id, callerRole, callerHouseID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return auth.ToUserResponse(user), nil
}

// Update actualiza un usuario dentro del alcance. Password se re-hashea si viene.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest, callerRole, callerHouseID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	// Reasignar de casa es operación exclusiva de super_admin.
	if in.HouseID != nil && callerRole == entity.RoleSuperAdmin {
		user.HouseID = *in.HouseID
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario del alcance. Nadie puede eliminar su propia
// cuenta, sin importar el rol.
func (uc *UserUseCase) Delete(id, callerUserID, callerRole, callerHouseID string) error {
	if id == callerUserID {
		return domain.ErrSelfDelete
	}
	user, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
