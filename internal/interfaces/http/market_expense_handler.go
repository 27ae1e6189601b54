package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/domain"
)

// MarketExpenseHandler maneja las peticiones HTTP para MarketExpense (protegido).
type MarketExpenseHandler struct {
	uc *usecase.MarketExpenseUseCase
}

// NewMarketExpenseHandler construye el handler.
func NewMarketExpenseHandler(uc *usecase.MarketExpenseUseCase) *MarketExpenseHandler {
	return &MarketExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear gasto de mercado
// @Tags         market-expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMarketExpenseRequest  true  "Datos del gasto"
// @Success      201   {object}  dto.MarketExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/market-expenses [post]
func (h *MarketExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMarketExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Place == "" || in.ResponsibleID == "" || in.Amount.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "place, amount y responsible_id son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c), GetRole(c), GetHouseID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar gastos del alcance
// @Tags         market-expenses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.MarketExpenseResponse
// @Router       /api/market-expenses [get]
func (h *MarketExpenseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetRole(c), GetHouseID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// StatsByMonth godoc
// @Summary      Agregados de gastos de un mes
// @Tags         market-expenses
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Año (default actual)"
// @Param        month  query  int  false  "Mes 1-12 (default actual)"
// @Success      200    {object}  dto.ExpenseStatsResponse
// @Router       /api/market-expenses/stats/month [get]
func (h *MarketExpenseHandler) StatsByMonth(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe estar entre 1 y 12"})
	}
	out, err := h.uc.StatsByMonth(GetRole(c), GetHouseID(c), year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GeneralStats godoc
// @Summary      Agregados de todos los gastos del alcance
// @Tags         market-expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpenseStatsResponse
// @Router       /api/market-expenses/stats/general [get]
func (h *MarketExpenseHandler) GeneralStats(c *fiber.Ctx) error {
	out, err := h.uc.GeneralStats(GetRole(c), GetHouseID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener gasto por ID
// @Tags         market-expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.MarketExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/market-expenses/{id} [get]
func (h *MarketExpenseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetRole(c), GetHouseID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar gasto
// @Tags         market-expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.UpdateMarketExpenseRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.MarketExpenseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/market-expenses/{id} [patch]
func (h *MarketExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMarketExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in, GetRole(c), GetHouseID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar gasto
// @Tags         market-expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/market-expenses/{id} [delete]
func (h *MarketExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetRole(c), GetHouseID(c)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "gasto eliminado"})
}
