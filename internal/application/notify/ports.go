// Package notify define el puerto de notificaciones transaccionales.
// La elección síncrono vs fire-and-forget es del adaptador, no del caso de
// uso: un Notifier síncrono propaga el fallo; el dispatcher asíncrono
// encola y siempre devuelve nil.
package notify

import (
	"context"

	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

// Notifier despacha una notificación por cada usuario destinatario.
type Notifier interface {
	PaymentCreated(ctx context.Context, payment *entity.Payment, recipients []*entity.User) error
	ExpenseCreated(ctx context.Context, expense *entity.MarketExpense, recipients []*entity.User) error
}
