package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

// HouseTotals montos agregados de una casa para el endpoint de estadísticas.
type HouseTotals struct {
	Payments decimal.Decimal
	Expenses decimal.Decimal
}

// HouseRepository define el puerto de persistencia para House (DIP).
type HouseRepository interface {
	Create(house *entity.House) error
	GetByID(id string) (*entity.House, error)
	// GetByNameOrSlug busca una casa con ese nombre o ese slug (chequeo de unicidad).
	GetByNameOrSlug(name, slug string) (*entity.House, error)
	List(limit, offset int) ([]*entity.House, error)
	Update(house *entity.House) error
	Delete(id string) error
	// Counts devuelve los conteos de entidades asociadas (guard referencial + stats).
	Counts(id string) (entity.HouseCounts, error)
	// Totals suma los pagos y gastos de la casa.
	Totals(id string) (HouseTotals, error)
}
