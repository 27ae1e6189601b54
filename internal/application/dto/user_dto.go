package dto

import "time"

// RegisterRequest entrada para registro (auth).
// CreatedByAdmin true = cuenta creada desde el panel (rol admin);
// false = registro bootstrap (rol super_admin).
type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required,max=200"`
	HouseID        string `json:"house_id" validate:"omitempty,uuid"`
	CreatedByAdmin bool   `json:"created_by_admin"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// HouseID solo se respeta si el caller es super_admin.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,max=200"`
	HouseID  string `json:"house_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest campos opcionales a actualizar.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	FullName *string `json:"full_name" validate:"omitempty,max=200"`
	IsActive *bool   `json:"is_active"`
	HouseID  *string `json:"house_id" validate:"omitempty,uuid"`
}

// ChangePasswordRequest cambio de contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	HouseID   string    `json:"house_id,omitempty"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y proyección pública del usuario.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
