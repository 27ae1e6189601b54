package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
	"github.com/jbejarano/portal-casas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt (cost 10) y persiste.
// CreatedByAdmin true → rol admin; false → super_admin (bootstrap).
// Devuelve ErrEmailAlreadyExists si el email ya existe (constraint único).
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := entity.RoleSuperAdmin
	if in.CreatedByAdmin {
		role = entity.RoleAdmin
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		HouseID:      in.HouseID,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password contra un usuario activo y genera el JWT.
// "No existe", "inactivo" y "password incorrecta" producen el mismo
// ErrUnauthorized para no permitir enumerar cuentas.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindActiveByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.SessionClaims{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		HouseID:  user.HouseID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		User:        *ToUserResponse(user),
	}, nil
}

// ChangePassword verifica la contraseña actual del usuario y guarda el hash
// de la nueva. La contraseña actual incorrecta es ErrForbidden: el caller ya
// está autenticado, lo que falla es la confirmación, no la sesión.
func (uc *AuthUseCase) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(userID, "")
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.ErrForbidden
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ToUserResponse proyección pública de un usuario (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		HouseID:   u.HouseID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
