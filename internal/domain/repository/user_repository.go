package repository

import "github.com/jbejarano/portal-casas-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// houseID vacío = sin filtro de casa (visibilidad global de super_admin).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id, houseID string) (*entity.User, error)
	// FindActiveByEmail busca un usuario activo por email (login). (nil, nil) si no existe.
	FindActiveByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(houseID string, limit, offset int) ([]*entity.User, error)
	// ListActiveByHouse lista los usuarios activos de una casa (destinatarios de notificaciones).
	ListActiveByHouse(houseID string) ([]*entity.User, error)
	Delete(id string) error
}
