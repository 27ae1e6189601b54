package repository

import "github.com/jbejarano/portal-casas-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// houseID vacío = sin filtro de casa.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id, houseID string) (*entity.Employee, error)
	List(houseID string, limit, offset int) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	Delete(id string) error
}
