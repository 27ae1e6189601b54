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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

const (
	categoryColumns = `id, COALESCE(house_id::text, ''), name, description, color, icon, is_active, created_at, updated_at`

	categoryInsert = `
		INSERT INTO categories (id, house_id, name, description, color, icon, is_active, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9)`

	categoryUpdate = `
		UPDATE categories SET name = $2, description = $3, color = $4, icon = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1`
)

// Create persiste una categoría nueva.
func (r *CategoryRepo) Create(category *entity.Category) error {
	_, err := r.pool.Exec(context.Background(), categoryInsert,
		category.ID, category.HouseID, category.Name, category.Description,
		category.Color, category.Icon, category.IsActive, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID, opcionalmente filtrada por casa.
func (r *CategoryRepo) GetByID(id, houseID string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE id = $1 AND ($2 = '' OR house_id = $2::uuid)`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id, houseID))
}

// GetByName busca una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, name))
}

// List lista todas las categorías del alcance, ordenadas por nombre.
func (r *CategoryRepo) List(houseID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE ($1 = '' OR house_id = $1::uuid)
		ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query, houseID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListActive lista solo las categorías activas (selector de gastos).
func (r *CategoryRepo) ListActive(houseID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE is_active AND ($1 = '' OR house_id = $1::uuid)
		ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query, houseID)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	_, err := r.pool.Exec(context.Background(), categoryUpdate,
		category.ID, category.Name, category.Description, category.Color, category.Icon,
		category.IsActive, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.HouseID, &c.Name, &c.Description, &c.Color, &c.Icon,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) scanAll(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.HouseID, &c.Name, &c.Description, &c.Color, &c.Icon,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
