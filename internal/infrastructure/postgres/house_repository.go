package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

var _ repository.HouseRepository = (*HouseRepo)(nil)

// HouseRepo implementación del puerto HouseRepository sobre PostgreSQL.
type HouseRepo struct {
	pool *pgxpool.Pool
}

// NewHouseRepository construye el adaptador de persistencia para casas.
func NewHouseRepository(pool *pgxpool.Pool) *HouseRepo {
	return &HouseRepo{pool: pool}
}

const houseColumns = `id, name, slug, description, is_active, created_at, updated_at`

// Create persiste una casa nueva.
func (r *HouseRepo) Create(house *entity.House) error {
	query := `
		INSERT INTO houses (id, name, slug, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		house.ID, house.Name, house.Slug, house.Description, house.IsActive,
		house.CreatedAt, house.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert house: %w", err)
	}
	return nil
}

// GetByID obtiene una casa por ID. (nil, nil) si no existe.
func (r *HouseRepo) GetByID(id string) (*entity.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id))
}

// GetByNameOrSlug busca una casa con ese nombre o ese slug.
func (r *HouseRepo) GetByNameOrSlug(name, slug string) (*entity.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE name = $1 OR slug = $2 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, name, slug))
}

// List lista casas con paginación, más recientes primero.
func (r *HouseRepo) List(limit, offset int) ([]*entity.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list houses: %w", err)
	}
	defer rows.Close()
	var list []*entity.House
	for rows.Next() {
		var h entity.House
		if err := rows.Scan(&h.ID, &h.Name, &h.Slug, &h.Description, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan house: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// Update actualiza una casa.
func (r *HouseRepo) Update(house *entity.House) error {
	query := `
		UPDATE houses SET name = $2, slug = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		house.ID, house.Name, house.Slug, house.Description, house.IsActive, house.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update house: %w", err)
	}
	return nil
}

// Delete elimina una casa por ID.
func (r *HouseRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM houses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete house: %w", err)
	}
	return nil
}

// Counts devuelve los conteos de entidades asociadas a la casa.
func (r *HouseRepo) Counts(id string) (entity.HouseCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE house_id = $1),
			(SELECT COUNT(*) FROM employees WHERE house_id = $1),
			(SELECT COUNT(*) FROM payments WHERE house_id = $1),
			(SELECT COUNT(*) FROM market_expenses WHERE house_id = $1),
			(SELECT COUNT(*) FROM categories WHERE house_id = $1)`
	var c entity.HouseCounts
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.Users, &c.Employees, &c.Payments, &c.Expenses, &c.Categories,
	)
	if err != nil {
		return entity.HouseCounts{}, fmt.Errorf("house counts: %w", err)
	}
	return c, nil
}

// Totals suma pagos y gastos de la casa.
func (r *HouseRepo) Totals(id string) (repository.HouseTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(total_amount) FROM payments WHERE house_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM market_expenses WHERE house_id = $1), 0)`
	var t repository.HouseTotals
	err := r.pool.QueryRow(context.Background(), query, id).Scan(&t.Payments, &t.Expenses)
	if err != nil {
		return repository.HouseTotals{}, fmt.Errorf("house totals: %w", err)
	}
	return t, nil
}

func (r *HouseRepo) scanOne(row pgx.Row) (*entity.House, error) {
	var h entity.House
	err := row.Scan(&h.ID, &h.Name, &h.Slug, &h.Description, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get house: %w", err)
	}
	return &h, nil
}
