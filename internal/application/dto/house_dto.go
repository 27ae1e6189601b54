package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateHouseRequest entrada para crear una casa.
type CreateHouseRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description"`
}

// UpdateHouseRequest campos opcionales a actualizar.
type UpdateHouseRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// HouseCountsResponse conteos de entidades asociadas.
type HouseCountsResponse struct {
	Users     int `json:"users"`
	Employees int `json:"employees"`
	Payments  int `json:"payments"`
	Expenses  int `json:"expenses"`
}

// HouseResponse salida de una casa; Stats se incluye en listados.
type HouseResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description,omitempty"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Stats       *HouseCountsResponse `json:"stats,omitempty"`
}

// HouseStatsResponse estadísticas completas de una casa.
type HouseStatsResponse struct {
	HouseID   string `json:"house_id"`
	HouseName string `json:"house_name"`
	Stats     struct {
		Users         int             `json:"users"`
		Employees     int             `json:"employees"`
		Payments      int             `json:"payments"`
		Expenses      int             `json:"expenses"`
		TotalPayments decimal.Decimal `json:"total_payments"`
		TotalExpenses decimal.Decimal `json:"total_expenses"`
	} `json:"stats"`
}
