package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

// HouseUseCase gestión de casas (tenants). Solo super_admin llega aquí
// (gate por capacidad en el router); el caso de uso asume caller autorizado.
type HouseUseCase struct {
	repo repository.HouseRepository
}

// NewHouseUseCase construye el caso de uso con el puerto de persistencia.
func NewHouseUseCase(repo repository.HouseRepository) *HouseUseCase {
	return &HouseUseCase{repo: repo}
}

// Create crea una casa. Nombre y slug son únicos globales.
func (uc *HouseUseCase) Create(in dto.CreateHouseRequest) (*dto.HouseResponse, error) {
	existing, err := uc.repo.GetByNameOrSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	house := &entity.House{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(house); err != nil {
		return nil, err
	}
	return toHouseResponse(house, nil), nil
}

// List lista las casas con conteos de entidades asociadas.
func (uc *HouseUseCase) List(limit, offset int) ([]*dto.HouseResponse, error) {
	houses, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.HouseResponse, 0, len(houses))
	for _, h := range houses {
		counts, err := uc.repo.Counts(h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toHouseResponse(h, &counts))
	}
	return out, nil
}

// GetByID obtiene una casa. (nil, nil) si no existe.
func (uc *HouseUseCase) GetByID(id string) (*dto.HouseResponse, error) {
	house, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if house == nil {
		return nil, nil
	}
	return toHouseResponse(house, nil), nil
}

// Update actualiza una casa re-verificando unicidad de nombre/slug.
func (uc *HouseUseCase) Update(id string, in dto.UpdateHouseRequest) (*dto.HouseResponse, error) {
	house, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if house == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil || in.Slug != nil {
		name, slug := house.Name, house.Slug
		if in.Name != nil {
			name = *in.Name
		}
		if in.Slug != nil {
			slug = *in.Slug
		}
		existing, err := uc.repo.GetByNameOrSlug(name, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		house.Name, house.Slug = name, slug
	}
	if in.Description != nil {
		house.Description = *in.Description
	}
	if in.IsActive != nil {
		house.IsActive = *in.IsActive
	}
	house.UpdatedAt = time.Now()
	if err := uc.repo.Update(house); err != nil {
		return nil, err
	}
	return toHouseResponse(house, nil), nil
}

// Delete elimina una casa solo si no tiene datos asociados (guard
// referencial, nunca borrado en cascada).
func (uc *HouseUseCase) Delete(id string) error {
	house, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if house == nil {
		return domain.ErrNotFound
	}
	counts, err := uc.repo.Counts(id)
	if err != nil {
		return err
	}
	if counts.HasData() {
		return domain.ErrHouseHasData
	}
	return uc.repo.Delete(id)
}

// Stats devuelve conteos y totales de pagos/gastos de la casa.
func (uc *HouseUseCase) Stats(id string) (*dto.HouseStatsResponse, error) {
	house, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if house == nil {
		return nil, domain.ErrNotFound
	}
	counts, err := uc.repo.Counts(id)
	if err != nil {
		return nil, err
	}
	totals, err := uc.repo.Totals(id)
	if err != nil {
		return nil, err
	}
	out := &dto.HouseStatsResponse{HouseID: house.ID, HouseName: house.Name}
	out.Stats.Users = counts.Users
	out.Stats.Employees = counts.Employees
	out.Stats.Payments = counts.Payments
	out.Stats.Expenses = counts.Expenses
	out.Stats.TotalPayments = totals.Payments
	out.Stats.TotalExpenses = totals.Expenses
	return out, nil
}

func toHouseResponse(h *entity.House, counts *entity.HouseCounts) *dto.HouseResponse {
	out := &dto.HouseResponse{
		ID:          h.ID,
		Name:        h.Name,
		Slug:        h.Slug,
		Description: h.Description,
		IsActive:    h.IsActive,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
	if counts != nil {
		out.Stats = &dto.HouseCountsResponse{
			Users:     counts.Users,
			Employees: counts.Employees,
			Payments:  counts.Payments,
			Expenses:  counts.Expenses,
		}
	}
	return out
}
