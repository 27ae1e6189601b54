package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketExpense representa un gasto de mercado/hogar. No tiene ciclo de vida:
// es mutable hasta que se elimina.
type MarketExpense struct {
	ID            string
	HouseID       string
	Date          time.Time
	Place         string
	Amount        decimal.Decimal
	Notes         string
	Category      string
	ResponsibleID string
	CreatedByID   string
	CreatedAt     time.Time

	// Nombres cargados eager para stats y notificación.
	ResponsibleName string
	CreatedByName   string
}
