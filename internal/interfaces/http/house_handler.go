package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/domain"
)

// HouseHandler maneja las peticiones HTTP para House (solo super_admin).
type HouseHandler struct {
	uc *usecase.HouseUseCase
}

// NewHouseHandler construye el handler.
func NewHouseHandler(uc *usecase.HouseUseCase) *HouseHandler {
	return &HouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear casa
// @Tags         houses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHouseRequest  true  "Datos de la casa"
// @Success      201   {object}  dto.HouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/houses [post]
func (h *HouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y slug son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una casa con ese nombre o slug"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar casas con conteos
// @Tags         houses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.HouseResponse
// @Router       /api/houses [get]
func (h *HouseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener casa por ID
// @Tags         houses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la casa"
// @Success      200  {object}  dto.HouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/houses/{id} [get]
func (h *HouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "casa no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar casa
// @Tags         houses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la casa"
// @Param        body  body  dto.UpdateHouseRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.HouseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/houses/{id} [patch]
func (h *HouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateHouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "casa no encontrada"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una casa con ese nombre o slug"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar casa (solo sin datos asociados)
// @Tags         houses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la casa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/houses/{id} [delete]
func (h *HouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "casa no encontrada"})
		case errors.Is(err, domain.ErrHouseHasData):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HOUSE_HAS_DATA", Message: "la casa tiene datos asociados; no se puede eliminar"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.MessageResponse{Message: "casa eliminada"})
}

// Stats godoc
// @Summary      Conteos y totales de una casa
// @Tags         houses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la casa"
// @Success      200  {object}  dto.HouseStatsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/houses/{id}/stats [get]
func (h *HouseHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "casa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// pageParams lee limit/offset del query string con defaults y tope 100.
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
