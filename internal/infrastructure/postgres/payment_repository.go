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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
// Las lecturas hacen JOIN con employees y users: el comprobante PDF y los
// correos necesitan el pago con su empleada y su empleador cargados.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository construye el adaptador de persistencia para pagos.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentSelect = `
	SELECT p.id, p.house_id, p.employee_id, p.employer_id, p.payment_date,
		p.base_salary, p.bonuses, p.deductions, p.total_amount, p.notes, p.status,
		COALESCE(p.digital_signature, ''), COALESCE(p.signed_document_url, ''),
		p.signed_at, p.created_at, p.updated_at,
		e.id, e.house_id, e.full_name, e.document_id, e.phone, e.address, e.position,
		e.base_salary, e.is_active, e.created_at, e.updated_at,
		u.id, COALESCE(u.house_id::text, ''), u.email, u.full_name, u.role,
		u.is_active, u.created_at, u.updated_at
	FROM payments p
	JOIN employees e ON e.id = p.employee_id
	JOIN users u ON u.id = p.employer_id`

// Create persiste un pago nuevo.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, house_id, employee_id, employer_id, payment_date,
			base_salary, bonuses, deductions, total_amount, notes, status,
			digital_signature, signed_document_url, signed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), NULLIF($13, ''), $14, $15, $16)`
	_, err := r.pool.Exec(context.Background(), query,
		payment.ID, payment.HouseID, payment.EmployeeID, payment.EmployerID,
		payment.PaymentDate, payment.BaseSalary, payment.Bonuses, payment.Deductions,
		payment.TotalAmount, payment.Notes, payment.Status,
		payment.DigitalSignature, payment.SignedDocumentURL, payment.SignedAt,
		payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID con empleada y empleador cargados.
func (r *PaymentRepo) GetByID(id, houseID string) (*entity.Payment, error) {
	query := paymentSelect + ` WHERE p.id = $1 AND ($2 = '' OR p.house_id = $2::uuid)`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id, houseID))
}

// List lista pagos con paginación, fecha de pago más reciente primero.
func (r *PaymentRepo) List(houseID string, limit, offset int) ([]*entity.Payment, error) {
	query := paymentSelect + `
		WHERE ($1 = '' OR p.house_id = $1::uuid)
		ORDER BY p.payment_date DESC, p.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, houseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un pago. EmployeeID y EmployerID no cambian nunca.
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE payments SET payment_date = $2, base_salary = $3, bonuses = $4,
			deductions = $5, total_amount = $6, notes = $7, status = $8,
			digital_signature = NULLIF($9, ''), signed_document_url = NULLIF($10, ''),
			signed_at = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		payment.ID, payment.PaymentDate, payment.BaseSalary, payment.Bonuses,
		payment.Deductions, payment.TotalAmount, payment.Notes, payment.Status,
		payment.DigitalSignature, payment.SignedDocumentURL, payment.SignedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) scanOne(row pgx.Row) (*entity.Payment, error) {
	p, err := r.scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepo) scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var e entity.Employee
	var u entity.User
	err := row.Scan(
		&p.ID, &p.HouseID, &p.EmployeeID, &p.EmployerID, &p.PaymentDate,
		&p.BaseSalary, &p.Bonuses, &p.Deductions, &p.TotalAmount, &p.Notes, &p.Status,
		&p.DigitalSignature, &p.SignedDocumentURL, &p.SignedAt, &p.CreatedAt, &p.UpdatedAt,
		&e.ID, &e.HouseID, &e.FullName, &e.DocumentID, &e.Phone, &e.Address, &e.Position,
		&e.BaseSalary, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		&u.ID, &u.HouseID, &u.Email, &u.FullName, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Employee = &e
	p.Employer = &u
	return &p, nil
}
