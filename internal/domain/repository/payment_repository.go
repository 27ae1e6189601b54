package repository

import "github.com/jbejarano/portal-casas-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment (DIP).
// GetByID y List devuelven el pago con Employee y Employer cargados:
// PDF y notificaciones necesitan el grafo completo.
// houseID vacío = sin filtro de casa.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id, houseID string) (*entity.Payment, error)
	List(houseID string, limit, offset int) ([]*entity.Payment, error)
	Update(payment *entity.Payment) error
	Delete(id string) error
}
