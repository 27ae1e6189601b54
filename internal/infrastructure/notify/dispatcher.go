// Package notify implementa el despacho asíncrono de notificaciones:
// encola en un canal con buffer y un worker las entrega en background.
// Una cola llena descarta el evento (las notificaciones nunca bloquean
// ni rompen la operación de negocio).
package notify

import (
	"context"

	appnotify "github.com/jbejarano/portal-casas-api/internal/application/notify"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/pkg/logger"
)

var _ appnotify.Notifier = (*Dispatcher)(nil)

type event struct {
	payment    *entity.Payment
	expense    *entity.MarketExpense
	recipients []*entity.User
}

// Dispatcher envuelve un Notifier síncrono y lo vuelve fire-and-forget.
type Dispatcher struct {
	sender appnotify.Notifier
	queue  chan event
	log    *logger.Logger
}

// NewDispatcher construye el dispatcher y arranca su worker.
func NewDispatcher(sender appnotify.Notifier, queueSize int, log *logger.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan event, queueSize),
		log:    log,
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		var err error
		switch {
		case ev.payment != nil:
			err = d.sender.PaymentCreated(context.Background(), ev.payment, ev.recipients)
		case ev.expense != nil:
			err = d.sender.ExpenseCreated(context.Background(), ev.expense, ev.recipients)
		}
		if err != nil {
			d.log.Error().Err(err).Msg("enviar notificación en background")
		}
	}
}

// PaymentCreated encola la notificación; siempre devuelve nil.
func (d *Dispatcher) PaymentCreated(_ context.Context, payment *entity.Payment, recipients []*entity.User) error {
	d.enqueue(event{payment: payment, recipients: recipients})
	return nil
}

// ExpenseCreated encola la notificación; siempre devuelve nil.
func (d *Dispatcher) ExpenseCreated(_ context.Context, expense *entity.MarketExpense, recipients []*entity.User) error {
	d.enqueue(event{expense: expense, recipients: recipients})
	return nil
}

func (d *Dispatcher) enqueue(ev event) {
	select {
	case d.queue <- ev:
	default:
		// cola llena: descartar antes que bloquear la petición
		d.log.Warn().Msg("cola de notificaciones llena, evento descartado")
	}
}
