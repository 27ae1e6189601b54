package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

var _ repository.MarketExpenseRepository = (*MarketExpenseRepo)(nil)

// MarketExpenseRepo implementación del puerto MarketExpenseRepository sobre PostgreSQL.
// Las lecturas hacen JOIN con users para traer los nombres del responsable
// y del creador, que las stats y las notificaciones necesitan.
type MarketExpenseRepo struct {
	pool *pgxpool.Pool
}

// NewMarketExpenseRepository construye el adaptador de persistencia para gastos de mercado.
func NewMarketExpenseRepository(pool *pgxpool.Pool) *MarketExpenseRepo {
	return &MarketExpenseRepo{pool: pool}
}

const expenseSelect = `
	SELECT e.id, COALESCE(e.house_id::text, ''), e.date, e.place, e.amount, e.notes, e.category,
		e.responsible_id, e.created_by_id, e.created_at,
		COALESCE(r.full_name, ''), COALESCE(c.full_name, '')
	FROM market_expenses e
	LEFT JOIN users r ON r.id = e.responsible_id
	LEFT JOIN users c ON c.id = e.created_by_id`

// Create persiste un gasto nuevo.
func (r *MarketExpenseRepo) Create(expense *entity.MarketExpense) error {
	query := `
		INSERT INTO market_expenses (id, house_id, date, place, amount, notes, category, responsible_id, created_by_id, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		expense.ID, expense.HouseID, expense.Date, expense.Place, expense.Amount,
		expense.Notes, expense.Category, expense.ResponsibleID, expense.CreatedByID,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert market expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID con los nombres cargados.
func (r *MarketExpenseRepo) GetByID(id, houseID string) (*entity.MarketExpense, error) {
	query := expenseSelect + ` WHERE e.id = $1 AND ($2 = '' OR e.house_id = $2::uuid)`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id, houseID))
}

// List lista gastos con paginación, más recientes primero.
func (r *MarketExpenseRepo) List(houseID string, limit, offset int) ([]*entity.MarketExpense, error) {
	query := expenseSelect + `
		WHERE ($1 = '' OR e.house_id = $1::uuid)
		ORDER BY e.date DESC, e.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, houseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list market expenses: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Update actualiza un gasto.
func (r *MarketExpenseRepo) Update(expense *entity.MarketExpense) error {
	query := `
		UPDATE market_expenses SET date = $2, place = $3, amount = $4, notes = $5,
			category = $6, responsible_id = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		expense.ID, expense.Date, expense.Place, expense.Amount, expense.Notes,
		expense.Category, expense.ResponsibleID,
	)
	if err != nil {
		return fmt.Errorf("update market expense: %w", err)
	}
	return nil
}

// Delete elimina un gasto por ID.
func (r *MarketExpenseRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM market_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete market expense: %w", err)
	}
	return nil
}

// StatsByMonth agrega los gastos de un mes calendario del alcance.
func (r *MarketExpenseRepo) StatsByMonth(houseID string, year, month int) (*repository.ExpenseStats, error) {
	where := `WHERE ($1 = '' OR e.house_id = $1::uuid)
		AND EXTRACT(YEAR FROM e.date) = $2 AND EXTRACT(MONTH FROM e.date) = $3`
	return r.stats(where, houseID, year, month)
}

// GeneralStats agrega todos los gastos del alcance.
func (r *MarketExpenseRepo) GeneralStats(houseID string) (*repository.ExpenseStats, error) {
	where := `WHERE ($1 = '' OR e.house_id = $1::uuid)`
	return r.stats(where, houseID)
}

// stats ejecuta las tres consultas de agregación con el mismo filtro:
// total global, desglose por responsable y desglose por lugar.
func (r *MarketExpenseRepo) stats(where string, args ...any) (*repository.ExpenseStats, error) {
	ctx := context.Background()
	out := &repository.ExpenseStats{}

	totalQuery := `SELECT COALESCE(SUM(e.amount), 0), COUNT(*) FROM market_expenses e ` + where
	if err := r.pool.QueryRow(ctx, totalQuery, args...).Scan(&out.Total, &out.Count); err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}

	byResponsible := `
		SELECT COALESCE(u.full_name, 'Sin responsable'), COALESCE(SUM(e.amount), 0), COUNT(*)
		FROM market_expenses e
		LEFT JOIN users u ON u.id = e.responsible_id ` + where + `
		GROUP BY COALESCE(u.full_name, 'Sin responsable')
		ORDER BY SUM(e.amount) DESC`
	groups, err := r.scanGroups(ctx, byResponsible, args...)
	if err != nil {
		return nil, fmt.Errorf("expenses by responsible: %w", err)
	}
	out.ByResponsible = groups

	byPlace := `
		SELECT e.place, COALESCE(SUM(e.amount), 0), COUNT(*)
		FROM market_expenses e ` + where + `
		GROUP BY e.place
		ORDER BY SUM(e.amount) DESC`
	groups, err = r.scanGroups(ctx, byPlace, args...)
	if err != nil {
		return nil, fmt.Errorf("expenses by place: %w", err)
	}
	out.ByPlace = groups

	return out, nil
}

func (r *MarketExpenseRepo) scanGroups(ctx context.Context, query string, args ...any) ([]repository.ExpenseGroup, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var groups []repository.ExpenseGroup
	for rows.Next() {
		var g repository.ExpenseGroup
		if err := rows.Scan(&g.Key, &g.Total, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *MarketExpenseRepo) scanOne(row pgx.Row) (*entity.MarketExpense, error) {
	var e entity.MarketExpense
	err := row.Scan(&e.ID, &e.HouseID, &e.Date, &e.Place, &e.Amount, &e.Notes, &e.Category,
		&e.ResponsibleID, &e.CreatedByID, &e.CreatedAt, &e.ResponsibleName, &e.CreatedByName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get market expense: %w", err)
	}
	return &e, nil
}

func (r *MarketExpenseRepo) scanAll(rows pgx.Rows) ([]*entity.MarketExpense, error) {
	var list []*entity.MarketExpense
	for rows.Next() {
		var e entity.MarketExpense
		if err := rows.Scan(&e.ID, &e.HouseID, &e.Date, &e.Place, &e.Amount, &e.Notes, &e.Category,
			&e.ResponsibleID, &e.CreatedByID, &e.CreatedAt, &e.ResponsibleName, &e.CreatedByName); err != nil {
			return nil, fmt.Errorf("scan market expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
