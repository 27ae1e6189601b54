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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository construye el adaptador de persistencia para empleadas.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

const employeeColumns = `id, house_id, full_name, document_id, phone, address, position, base_salary, is_active, created_at, updated_at`

// Create persiste una empleada nueva. DocumentID es único global.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, house_id, full_name, document_id, phone, address, position, base_salary, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		employee.ID, employee.HouseID, employee.FullName, employee.DocumentID,
		employee.Phone, employee.Address, employee.Position, employee.BaseSalary,
		employee.IsActive, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene una empleada por ID, opcionalmente filtrada por casa.
func (r *EmployeeRepo) GetByID(id, houseID string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE id = $1 AND ($2 = '' OR house_id = $2::uuid)`
	var e entity.Employee
	err := r.pool.QueryRow(context.Background(), query, id, houseID).Scan(
		&e.ID, &e.HouseID, &e.FullName, &e.DocumentID, &e.Phone, &e.Address,
		&e.Position, &e.BaseSalary, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// List lista empleadas con paginación, opcionalmente filtradas por casa.
func (r *EmployeeRepo) List(houseID string, limit, offset int) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE ($1 = '' OR house_id = $1::uuid)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, houseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.HouseID, &e.FullName, &e.DocumentID, &e.Phone, &e.Address,
			&e.Position, &e.BaseSalary, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza una empleada.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET full_name = $2, document_id = $3, phone = $4, address = $5,
			position = $6, base_salary = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		employee.ID, employee.FullName, employee.DocumentID, employee.Phone,
		employee.Address, employee.Position, employee.BaseSalary, employee.IsActive,
		employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Delete elimina una empleada por ID.
func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
