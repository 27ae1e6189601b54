package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMarketExpenseRequest entrada para crear un gasto de mercado.
// HouseID solo se respeta si el caller es super_admin.
type CreateMarketExpenseRequest struct {
	HouseID       string          `json:"house_id" validate:"omitempty,uuid"`
	Date          time.Time       `json:"date" validate:"required"`
	Place         string          `json:"place" validate:"required,max=200"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Notes         string          `json:"notes"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	ResponsibleID string          `json:"responsible_id" validate:"required,uuid"`
}

// UpdateMarketExpenseRequest campos opcionales a actualizar.
type UpdateMarketExpenseRequest struct {
	Date          *time.Time       `json:"date"`
	Place         *string          `json:"place" validate:"omitempty,max=200"`
	Amount        *decimal.Decimal `json:"amount"`
	Notes         *string          `json:"notes"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	ResponsibleID *string          `json:"responsible_id" validate:"omitempty,uuid"`
}

// MarketExpenseResponse salida de un gasto.
type MarketExpenseResponse struct {
	ID              string          `json:"id"`
	HouseID         string          `json:"house_id"`
	Date            time.Time       `json:"date"`
	Place           string          `json:"place"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes,omitempty"`
	Category        string          `json:"category,omitempty"`
	ResponsibleID   string          `json:"responsible_id"`
	ResponsibleName string          `json:"responsible_name,omitempty"`
	CreatedByID     string          `json:"created_by_id"`
	CreatedByName   string          `json:"created_by_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ExpenseGroupResponse agregado por responsable o lugar.
type ExpenseGroupResponse struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ExpenseStatsResponse agregados de gastos; Year/Month solo en stats mensuales.
type ExpenseStatsResponse struct {
	Year          int                    `json:"year,omitempty"`
	Month         int                    `json:"month,omitempty"`
	Total         decimal.Decimal        `json:"total"`
	Count         int                    `json:"count"`
	ByResponsible []ExpenseGroupResponse `json:"by_responsible"`
	ByPlace       []ExpenseGroupResponse `json:"by_place"`
}
