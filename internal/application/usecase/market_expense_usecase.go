package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/notify"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/authz"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

// MarketExpenseUseCase gestión de gastos de mercado, con alcance por casa y
// notificación a los usuarios activos de la casa al crear.
type MarketExpenseUseCase struct {
	repo     repository.MarketExpenseRepository
	userRepo repository.UserRepository
	notifier notify.Notifier
}

// NewMarketExpenseUseCase construye el caso de uso.
func NewMarketExpenseUseCase(repo repository.MarketExpenseRepository, userRepo repository.UserRepository, notifier notify.Notifier) *MarketExpenseUseCase {
	return &MarketExpenseUseCase{repo: repo, userRepo: userRepo, notifier: notifier}
}

// Create crea un gasto en la casa del caller y notifica a sus usuarios
// activos. El gasto queda persistido aunque la notificación falle; en modo
// síncrono el fallo se propaga como error interno sin rollback compensatorio.
func (uc *MarketExpenseUseCase) Create(ctx context.Context, in dto.CreateMarketExpenseRequest, callerUserID, callerRole, callerHouseID string) (*dto.MarketExpenseResponse, error) {
	expense := &entity.MarketExpense{
		ID:            uuid.New().String(),
		// La casa del gasto sale de la sesión del caller; solo super_admin
		// puede fijarla en el body.
		HouseID:       authz.WriteHouseID(callerRole, callerHouseID, in.HouseID),
		Date:          in.Date,
		Place:         in.Place,
		Amount:        in.Amount,
		Notes:         in.Notes,
		Category:      in.Category,
		ResponsibleID: in.ResponsibleID,
		CreatedByID:   callerUserID,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}

	// Recargar con los nombres de responsable/creador; fallar aquí es un
	// error interno, no de validación.
	reloaded, err := uc.repo.GetByID(expense.ID, "")
	if err != nil {
		return nil, err
	}
	if reloaded == nil {
		return nil, domain.ErrReloadFailed
	}

	recipients, err := uc.userRepo.ListActiveByHouse(reloaded.HouseID)
	if err != nil {
		return nil, err
	}
	if err := uc.notifier.ExpenseCreated(ctx, reloaded, recipients); err != nil {
		return nil, fmt.Errorf("notificar gasto creado: %w", err)
	}
	return ToMarketExpenseResponse(reloaded), nil
}

// List lista los gastos del alcance del caller.
func (uc *MarketExpenseUseCase) List(callerRole, callerHouseID string, limit, offset int) ([]*dto.MarketExpenseResponse, error) {
	expenses, err := uc.repo.List(authz.HouseFilter(callerRole, callerHouseID), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MarketExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, ToMarketExpenseResponse(e))
	}
	return out, nil
}

// GetByID obtiene un gasto del alcance. (nil, nil) si no existe o es de otra casa.
func (uc *MarketExpenseUseCase) GetByID(id, callerRole, callerHouseID string) (*dto.MarketExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	return ToMarketExpenseResponse(expense), nil
}

// Update actualiza un gasto del alcance (merge superficial).
func (uc *MarketExpenseUseCase) Update(id string, in dto.UpdateMarketExpenseRequest, callerRole, callerHouseID string) (*dto.MarketExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if in.Date != nil {
		expense.Date = *in.Date
	}
	if in.Place != nil {
		expense.Place = *in.Place
	}
	if in.Amount != nil {
		expense.Amount = *in.Amount
	}
	if in.Notes != nil {
		expense.Notes = *in.Notes
	}
	if in.Category != nil {
		expense.Category = *in.Category
	}
	if in.ResponsibleID != nil {
		expense.ResponsibleID = *in.ResponsibleID
	}
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	return ToMarketExpenseResponse(expense), nil
}

// Delete elimina un gasto del alcance.
func (uc *MarketExpenseUseCase) Delete(id, callerRole, callerHouseID string) error {
	expense, err := uc.repo.GetByID(id, authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// StatsByMonth agrega los gastos de un mes calendario del alcance.
func (uc *MarketExpenseUseCase) StatsByMonth(callerRole, callerHouseID string, year, month int) (*dto.ExpenseStatsResponse, error) {
	stats, err := uc.repo.StatsByMonth(authz.HouseFilter(callerRole, callerHouseID), year, month)
	if err != nil {
		return nil, err
	}
	out := toExpenseStatsResponse(stats)
	out.Year, out.Month = year, month
	return out, nil
}

// GeneralStats agrega todos los gastos del alcance.
func (uc *MarketExpenseUseCase) GeneralStats(callerRole, callerHouseID string) (*dto.ExpenseStatsResponse, error) {
	stats, err := uc.repo.GeneralStats(authz.HouseFilter(callerRole, callerHouseID))
	if err != nil {
		return nil, err
	}
	return toExpenseStatsResponse(stats), nil
}

// ToMarketExpenseResponse proyección de un gasto.
func ToMarketExpenseResponse(e *entity.MarketExpense) *dto.MarketExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.MarketExpenseResponse{
		ID:              e.ID,
		HouseID:         e.HouseID,
		Date:            e.Date,
		Place:           e.Place,
		Amount:          e.Amount,
		Notes:           e.Notes,
		Category:        e.Category,
		ResponsibleID:   e.ResponsibleID,
		ResponsibleName: e.ResponsibleName,
		CreatedByID:     e.CreatedByID,
		CreatedByName:   e.CreatedByName,
		CreatedAt:       e.CreatedAt,
	}
}

func toExpenseStatsResponse(s *repository.ExpenseStats) *dto.ExpenseStatsResponse {
	out := &dto.ExpenseStatsResponse{
		Total:         s.Total,
		Count:         s.Count,
		ByResponsible: make([]dto.ExpenseGroupResponse, 0, len(s.ByResponsible)),
		ByPlace:       make([]dto.ExpenseGroupResponse, 0, len(s.ByPlace)),
	}
	for _, g := range s.ByResponsible {
		out.ByResponsible = append(out.ByResponsible, dto.ExpenseGroupResponse{Key: g.Key, Total: g.Total, Count: g.Count})
	}
	for _, g := range s.ByPlace {
		out.ByPlace = append(out.ByPlace, dto.ExpenseGroupResponse{Key: g.Key, Total: g.Total, Count: g.Count})
	}
	return out
}
