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

// CategoryUseCase gestión de categorías de gastos. La mutación está gateada
// a super_admin en el router; las lecturas se escopan por casa.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso con el puerto de persistencia.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único global.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		HouseID:     in.HouseID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista las categorías del alcance del caller, ordenadas por nombre.
func (uc *CategoryUseCase) List(callerRole, callerHouseID string) ([]*dto.CategoryResponse, error) {
	categories, err := uc.repo.List(authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(categories), nil
}

// ListActive lista solo las categorías activas del alcance.
func (uc *CategoryUseCase) ListActive(callerRole, callerHouseID string) ([]*dto.CategoryResponse, error) {
	categories, err := uc.repo.ListActive(authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(categories), nil
}

// GetByID obtiene una categoría del alcance. (nil, nil) si no existe.
func (uc *CategoryUseCase) GetByID(id, callerRole, callerHouseID string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update actualiza una categoría re-verificando unicidad del nombre.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id, "")
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != category.Name {
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id, "")
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Toggle invierte el flag activo de la categoría.
func (uc *CategoryUseCase) Toggle(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id, "")
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.IsActive = !category.IsActive
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		HouseID:     c.HouseID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryResponses(categories []*entity.Category) []*dto.CategoryResponse {
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out
}
