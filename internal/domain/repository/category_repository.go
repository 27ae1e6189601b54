package repository

import "github.com/jbejarano/portal-casas-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// houseID vacío = sin filtro de casa.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id, houseID string) (*entity.Category, error)
	// GetByName busca por nombre exacto (chequeo de unicidad). (nil, nil) si no existe.
	GetByName(name string) (*entity.Category, error)
	List(houseID string) ([]*entity.Category, error)
	ListActive(houseID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
