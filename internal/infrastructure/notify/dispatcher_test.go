package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/pkg/logger"
)

type fakeSender struct {
	payments chan *entity.Payment
	expenses chan *entity.MarketExpense
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		payments: make(chan *entity.Payment, 10),
		expenses: make(chan *entity.MarketExpense, 10),
	}
}

func (f *fakeSender) PaymentCreated(_ context.Context, p *entity.Payment, _ []*entity.User) error {
	f.payments <- p
	return nil
}

func (f *fakeSender) ExpenseCreated(_ context.Context, e *entity.MarketExpense, _ []*entity.User) error {
	f.expenses <- e
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestDispatcherEntregaPagoEnBackground(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, 10, testLogger())

	payment := &entity.Payment{ID: "pay-1"}
	err := d.PaymentCreated(context.Background(), payment, nil)
	require.NoError(t, err)

	select {
	case got := <-sender.payments:
		assert.Equal(t, "pay-1", got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación de pago nunca llegó al sender")
	}
}

func TestDispatcherEntregaGastoEnBackground(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, 10, testLogger())

	expense := &entity.MarketExpense{ID: "exp-1"}
	err := d.ExpenseCreated(context.Background(), expense, nil)
	require.NoError(t, err)

	select {
	case got := <-sender.expenses:
		assert.Equal(t, "exp-1", got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación de gasto nunca llegó al sender")
	}
}

func TestDispatcherNuncaBloqueaConColaLlena(t *testing.T) {
	// sender que nunca consume: el worker queda bloqueado en la primera
	// entrega y la cola se llena.
	blocked := &fakeSender{
		payments: make(chan *entity.Payment), // sin buffer y nadie lee
		expenses: make(chan *entity.MarketExpense),
	}
	d := NewDispatcher(blocked, 1, testLogger())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = d.PaymentCreated(context.Background(), &entity.Payment{ID: "pay"}, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("el dispatcher bloqueó al productor con la cola llena")
	}
}
