package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

// ExpenseGroup agregado de gastos por una dimensión (responsable o lugar).
type ExpenseGroup struct {
	Key   string
	Total decimal.Decimal
	Count int
}

// ExpenseStats agregados de gastos de mercado.
type ExpenseStats struct {
	Total         decimal.Decimal
	Count         int
	ByResponsible []ExpenseGroup
	ByPlace       []ExpenseGroup
}

// MarketExpenseRepository define el puerto de persistencia para MarketExpense (DIP).
// houseID vacío = sin filtro de casa.
type MarketExpenseRepository interface {
	Create(expense *entity.MarketExpense) error
	GetByID(id, houseID string) (*entity.MarketExpense, error)
	List(houseID string, limit, offset int) ([]*entity.MarketExpense, error)
	Update(expense *entity.MarketExpense) error
	Delete(id string) error
	// StatsByMonth agrega los gastos de un mes calendario.
	StatsByMonth(houseID string, year, month int) (*ExpenseStats, error)
	// GeneralStats agrega todos los gastos del alcance.
	GeneralStats(houseID string) (*ExpenseStats, error)
}
