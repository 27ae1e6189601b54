package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

type memExpenseRepo struct {
	expenses map[string]*entity.MarketExpense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[string]*entity.MarketExpense)}
}

func (m *memExpenseRepo) Create(e *entity.MarketExpense) error {
	cp := *e
	m.expenses[e.ID] = &cp
	return nil
}

func (m *memExpenseRepo) GetByID(id, houseID string) (*entity.MarketExpense, error) {
	e, ok := m.expenses[id]
	if !ok {
		return nil, nil
	}
	if houseID != "" && e.HouseID != houseID {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memExpenseRepo) List(houseID string, limit, offset int) ([]*entity.MarketExpense, error) {
	var out []*entity.MarketExpense
	for _, e := range m.expenses {
		if houseID == "" || e.HouseID == houseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memExpenseRepo) Update(e *entity.MarketExpense) error {
	cp := *e
	m.expenses[e.ID] = &cp
	return nil
}

func (m *memExpenseRepo) Delete(id string) error {
	delete(m.expenses, id)
	return nil
}

func (m *memExpenseRepo) StatsByMonth(houseID string, year, month int) (*repository.ExpenseStats, error) {
	return &repository.ExpenseStats{}, nil
}

func (m *memExpenseRepo) GeneralStats(houseID string) (*repository.ExpenseStats, error) {
	return &repository.ExpenseStats{}, nil
}

// stubNotifier cuenta los despachos sin enviar nada.
type stubNotifier struct {
	expenseCalls int
	recipients   []*entity.User
}

func (s *stubNotifier) PaymentCreated(context.Context, *entity.Payment, []*entity.User) error {
	return nil
}

func (s *stubNotifier) ExpenseCreated(_ context.Context, _ *entity.MarketExpense, recipients []*entity.User) error {
	s.expenseCalls++
	s.recipients = recipients
	return nil
}

func expenseRequest(houseID string) dto.CreateMarketExpenseRequest {
	return dto.CreateMarketExpenseRequest{
		HouseID:       houseID,
		Date:          time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Place:         "Mercado Central",
		Amount:        decimal.RequireFromString("185000"),
		ResponsibleID: "resp-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────

func TestExpenseCreate_CasaDesdeSesionNoDesdeBody(t *testing.T) {
	repo := newMemExpenseRepo()
	users := newMemUserRepo()
	notifier := &stubNotifier{}
	uc := usecase.NewMarketExpenseUseCase(repo, users, notifier)

	out, err := uc.Create(context.Background(), expenseRequest(casaDos),
		"caller-1", entity.RoleAdmin, casaUno)

	require.NoError(t, err)
	assert.Equal(t, casaUno, out.HouseID,
		"un admin siempre escribe en su propia casa, sin importar el body")
}

func TestExpenseCreate_SuperAdminFijaCasaDelBody(t *testing.T) {
	repo := newMemExpenseRepo()
	users := newMemUserRepo()
	notifier := &stubNotifier{}
	uc := usecase.NewMarketExpenseUseCase(repo, users, notifier)

	out, err := uc.Create(context.Background(), expenseRequest(casaDos),
		"caller-1", entity.RoleSuperAdmin, "")

	require.NoError(t, err)
	assert.Equal(t, casaDos, out.HouseID)
}

func TestExpenseCreate_NotificaUsuariosActivosDeLaCasa(t *testing.T) {
	repo := newMemExpenseRepo()
	users := newMemUserRepo()
	seedUser(users, "u1", casaUno, "a@casa.test", entity.RoleAdmin)
	inactivo := seedUser(users, "u2", casaUno, "b@casa.test", entity.RoleAdmin)
	inactivo.IsActive = false
	_ = users.Update(inactivo)
	seedUser(users, "u3", casaDos, "c@casa.test", entity.RoleAdmin)
	notifier := &stubNotifier{}
	uc := usecase.NewMarketExpenseUseCase(repo, users, notifier)

	_, err := uc.Create(context.Background(), expenseRequest(""),
		"caller-1", entity.RoleAdmin, casaUno)

	require.NoError(t, err)
	assert.Equal(t, 1, notifier.expenseCalls)
	require.Len(t, notifier.recipients, 1, "solo usuarios activos de la casa del gasto")
	assert.Equal(t, "a@casa.test", notifier.recipients[0].Email)
}
