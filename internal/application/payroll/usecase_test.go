package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/payroll"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePaymentRepo struct {
	payments map[string]*entity.Payment
	employee *entity.Employee
	employer *entity.User
}

func newFakePaymentRepo(employee *entity.Employee, employer *entity.User) *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[string]*entity.Payment),
		employee: employee,
		employer: employer,
	}
}

func (f *fakePaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByID(id, houseID string) (*entity.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	if houseID != "" && p.HouseID != houseID {
		return nil, nil
	}
	cp := *p
	cp.Employee = f.employee
	cp.Employer = f.employer
	return &cp, nil
}

func (f *fakePaymentRepo) List(houseID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.payments {
		if houseID == "" || p.HouseID == houseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(p *entity.Payment) error {
	cp := *p
	cp.Employee, cp.Employer = nil, nil
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) Delete(id string) error {
	delete(f.payments, id)
	return nil
}

type fakeEmployeeRepo struct {
	employee *entity.Employee
}

func (f *fakeEmployeeRepo) GetByID(id, houseID string) (*entity.Employee, error) {
	if f.employee == nil || f.employee.ID != id {
		return nil, nil
	}
	if houseID != "" && f.employee.HouseID != houseID {
		return nil, nil
	}
	return f.employee, nil
}

func (f *fakeEmployeeRepo) Create(*entity.Employee) error                       { panic("no usado") }
func (f *fakeEmployeeRepo) List(string, int, int) ([]*entity.Employee, error)   { panic("no usado") }
func (f *fakeEmployeeRepo) Update(*entity.Employee) error                       { panic("no usado") }
func (f *fakeEmployeeRepo) Delete(string) error                                 { panic("no usado") }

type fakeUserRepo struct {
	active []*entity.User
}

func (f *fakeUserRepo) ListActiveByHouse(string) ([]*entity.User, error) { return f.active, nil }
func (f *fakeUserRepo) Create(*entity.User) error                        { panic("no usado") }
func (f *fakeUserRepo) GetByID(string, string) (*entity.User, error)     { panic("no usado") }
func (f *fakeUserRepo) FindActiveByEmail(string) (*entity.User, error)   { panic("no usado") }
func (f *fakeUserRepo) Update(*entity.User) error                        { panic("no usado") }
func (f *fakeUserRepo) List(string, int, int) ([]*entity.User, error)    { panic("no usado") }
func (f *fakeUserRepo) Delete(string) error                              { panic("no usado") }

type fakePDF struct{}

func (fakePDF) GenerateReceiptPDF(context.Context, *entity.Payment) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type fakeStorage struct {
	savedName string
}

func (f *fakeStorage) Save(_ context.Context, filename, _ string, _ []byte) (string, error) {
	f.savedName = filename
	return "/uploads/signed-documents/" + filename, nil
}

type fakeNotifier struct {
	paymentCalls int
	recipients   []*entity.User
}

func (f *fakeNotifier) PaymentCreated(_ context.Context, _ *entity.Payment, r []*entity.User) error {
	f.paymentCalls++
	f.recipients = r
	return nil
}

func (f *fakeNotifier) ExpenseCreated(context.Context, *entity.MarketExpense, []*entity.User) error {
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const houseA = "11111111-1111-1111-1111-111111111111"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testEmployee() *entity.Employee {
	return &entity.Employee{
		ID:         "22222222-2222-2222-2222-222222222222",
		HouseID:    houseA,
		FullName:   "María Gómez",
		DocumentID: "1020304050",
		BaseSalary: dec("1300000"),
		IsActive:   true,
	}
}

func testEmployer() *entity.User {
	return &entity.User{
		ID:       "33333333-3333-3333-3333-333333333333",
		HouseID:  houseA,
		Email:    "empleador@casa.test",
		FullName: "Juan Bejarano",
		Role:     entity.RoleAdminHouse,
		IsActive: true,
	}
}

func buildUseCase() (*payroll.PaymentUseCase, *fakePaymentRepo, *fakeStorage, *fakeNotifier) {
	employee := testEmployee()
	employer := testEmployer()
	repo := newFakePaymentRepo(employee, employer)
	storage := &fakeStorage{}
	notifier := &fakeNotifier{}
	uc := payroll.NewPaymentUseCase(
		repo,
		&fakeEmployeeRepo{employee: employee},
		&fakeUserRepo{active: []*entity.User{employer}},
		fakePDF{},
		storage,
		notifier,
	)
	return uc, repo, storage, notifier
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotalYNotifica(t *testing.T) {
	uc, _, _, notifier := buildUseCase()

	base := dec("1500000")
	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
		BaseSalary:  &base,
		Bonuses:     dec("200000"),
		Deductions:  dec("50000"),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, out.Status)
	assert.True(t, out.TotalAmount.Equal(dec("1650000")),
		"total = base + bonos - deducciones, obtuvo %s", out.TotalAmount)
	assert.Equal(t, 1, notifier.paymentCalls, "debe notificar a los usuarios de la casa")
	require.Len(t, notifier.recipients, 1)
	assert.Equal(t, testEmployer().Email, notifier.recipients[0].Email)
	require.NotNil(t, out.Employee, "la respuesta debe incluir la empleada")
	require.NotNil(t, out.Employer, "la respuesta debe incluir al empleador")
}

func TestCreate_SinSalarioUsaElDeLaEmpleada(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)

	require.NoError(t, err)
	assert.True(t, out.BaseSalary.Equal(dec("1300000")),
		"sin base_salary explícito se usa el salario de la empleada")
	assert.True(t, out.TotalAmount.Equal(dec("1300000")))
}

func TestCreate_TotalNegativoPermitido(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	base := dec("100000")
	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
		BaseSalary:  &base,
		Deductions:  dec("150000"),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)

	require.NoError(t, err)
	assert.True(t, out.TotalAmount.IsNegative(),
		"deducciones mayores al salario producen total negativo, no error")
}

func TestCreate_EmpleadaDeOtraCasa_NotFound(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	_, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
	}, testEmployer().ID, entity.RoleAdmin, "99999999-9999-9999-9999-999999999999")

	assert.ErrorIs(t, err, domain.ErrNotFound,
		"una empleada de otra casa es indistinguible de inexistente")
}

func TestUpdate_SalarioBaseInmutable(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)
	require.NoError(t, err)

	bonos := dec("100000")
	updated, err := uc.Update(out.ID, dto.UpdatePaymentRequest{Bonuses: &bonos}, entity.RoleAdminHouse, houseA)
	require.NoError(t, err)

	assert.True(t, updated.BaseSalary.Equal(out.BaseSalary), "el salario base no cambia en updates")
	assert.True(t, updated.TotalAmount.Equal(out.BaseSalary.Add(bonos)),
		"el total se recalcula sobre el salario base almacenado")
}

func TestSign_PasaASignedYEstampaFecha(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)
	require.NoError(t, err)

	signed, err := uc.Sign(out.ID, "data:image/png;base64,iVBOR", entity.RoleAdminHouse, houseA)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSigned, signed.Status)
	require.NotNil(t, signed.SignedAt)
}

func TestUploadSigned_CompletaYRenombra(t *testing.T) {
	uc, _, storage, _ := buildUseCase()

	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)
	require.NoError(t, err)

	// pending → completed directo es válido (firma en papel)
	completed, err := uc.UploadSigned(context.Background(), out.ID,
		"comprobante firmado.PDF", "application/pdf", []byte("%PDF"), entity.RoleAdminHouse, houseA)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentCompleted, completed.Status)
	require.NotNil(t, completed.SignedAt)
	assert.NotContains(t, storage.savedName, "comprobante",
		"el archivo se guarda bajo un nombre aleatorio, no el original")
	assert.Regexp(t, `^[0-9a-f]{32}\.pdf$`, storage.savedName)
	assert.Contains(t, completed.SignedDocumentURL, storage.savedName)
}

func TestUploadSigned_ExtensionInvalida(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)
	require.NoError(t, err)

	_, err = uc.UploadSigned(context.Background(), out.ID,
		"malicioso.exe", "application/octet-stream", []byte{0x4d, 0x5a}, entity.RoleAdminHouse, houseA)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_OtraCasaInvisible(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:  testEmployee().ID,
		PaymentDate: time.Now(),
	}, testEmployer().ID, entity.RoleAdminHouse, houseA)
	require.NoError(t, err)

	got, err := uc.GetByID(out.ID, entity.RoleAdmin, "99999999-9999-9999-9999-999999999999")
	require.NoError(t, err)
	assert.Nil(t, got, "un pago de otra casa no se expone")

	// super_admin sí lo ve (alcance global)
	got, err = uc.GetByID(out.ID, entity.RoleSuperAdmin, "")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
