package mailer

import (
	"context"

	"github.com/jbejarano/portal-casas-api/internal/application/notify"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/pkg/logger"
)

var _ notify.Notifier = (*NoopNotifier)(nil)

// NoopNotifier descarta las notificaciones. Se usa cuando no hay
// RESEND_API_KEY configurada (entornos locales y tests de integración).
type NoopNotifier struct {
	log *logger.Logger
}

// NewNoopNotifier construye el notificador nulo.
func NewNoopNotifier(log *logger.Logger) *NoopNotifier {
	return &NoopNotifier{log: log}
}

func (n *NoopNotifier) PaymentCreated(_ context.Context, payment *entity.Payment, recipients []*entity.User) error {
	n.log.Debug().Str("pago", payment.ID).Int("destinatarios", len(recipients)).
		Msg("notificación de pago descartada (mailer deshabilitado)")
	return nil
}

func (n *NoopNotifier) ExpenseCreated(_ context.Context, expense *entity.MarketExpense, recipients []*entity.User) error {
	n.log.Debug().Str("gasto", expense.ID).Int("destinatarios", len(recipients)).
		Msg("notificación de gasto descartada (mailer deshabilitado)")
	return nil
}
