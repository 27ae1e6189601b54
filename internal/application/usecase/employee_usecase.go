package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/authz"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

// EmployeeUseCase gestión de empleadas, con alcance por casa.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso con el puerto de persistencia.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create crea una empleada en la casa del caller.
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest, callerRole, callerHouseID string) (*dto.EmployeeResponse, error) {
	now := time.Now()
	employee := &entity.Employee{
		ID:         uuid.New().String(),
		HouseID:    authz.WriteHouseID(callerRole, callerHouseID, in.HouseID),
		FullName:   in.FullName,
		DocumentID: in.DocumentID,
		Phone:      in.Phone,
		Address:    in.Address,
		Position:   in.Position,
		BaseSalary: in.BaseSalary,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// List lista las empleadas del alcance del caller.
func (uc *EmployeeUseCase) List(callerRole, callerHouseID string, limit, offset int) ([]*dto.EmployeeResponse, error) {
	employees, err := uc.repo.List(authz.HouseFilter(callerRole, callerHouseID), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToEmployeeResponse(e))
	}
	return out, nil
}

// GetByID obtiene una empleada del alcance. (nil, nil) si no existe o es de otra casa.
func (uc *EmployeeUseCase) GetByID(id, callerRole, callerHouseID string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	return ToEmployeeResponse(employee), nil
}

// Update actualiza una empleada del alcance (merge superficial).
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest, callerRole, callerHouseID string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		employee.FullName = *in.FullName
	}
	if in.DocumentID != nil {
		employee.DocumentID = *in.DocumentID
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if in.Address != nil {
		employee.Address = *in.Address
	}
	if in.Position != nil {
		employee.Position = *in.Position
	}
	if in.BaseSalary != nil {
		employee.BaseSalary = *in.BaseSalary
	}
	if in.IsActive != nil {
		employee.IsActive = *in.IsActive
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// Delete elimina una empleada del alcance.
func (uc *EmployeeUseCase) Delete(id, callerRole, callerHouseID string) error {
	employee, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ToEmployeeResponse proyección de una empleada.
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		HouseID:    e.HouseID,
		FullName:   e.FullName,
		DocumentID: e.DocumentID,
		Phone:      e.Phone,
		Address:    e.Address,
		Position:   e.Position,
		BaseSalary: e.BaseSalary,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
