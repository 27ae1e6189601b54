package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/domain"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

// memHouseRepo repo en memoria; counts y totals son programables por test.
type memHouseRepo struct {
	houses map[string]*entity.House
	counts map[string]entity.HouseCounts
	totals map[string]repository.HouseTotals
}

func newMemHouseRepo() *memHouseRepo {
	return &memHouseRepo{
		houses: make(map[string]*entity.House),
		counts: make(map[string]entity.HouseCounts),
		totals: make(map[string]repository.HouseTotals),
	}
}

func (m *memHouseRepo) Create(h *entity.House) error {
	cp := *h
	m.houses[h.ID] = &cp
	return nil
}

func (m *memHouseRepo) GetByID(id string) (*entity.House, error) {
	h, ok := m.houses[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (m *memHouseRepo) GetByNameOrSlug(name, slug string) (*entity.House, error) {
	for _, h := range m.houses {
		if h.Name == name || h.Slug == slug {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memHouseRepo) List(limit, offset int) ([]*entity.House, error) {
	var out []*entity.House
	for _, h := range m.houses {
		out = append(out, h)
	}
	return out, nil
}

func (m *memHouseRepo) Update(h *entity.House) error {
	cp := *h
	m.houses[h.ID] = &cp
	return nil
}

func (m *memHouseRepo) Delete(id string) error {
	delete(m.houses, id)
	return nil
}

func (m *memHouseRepo) Counts(id string) (entity.HouseCounts, error) {
	return m.counts[id], nil
}

func (m *memHouseRepo) Totals(id string) (repository.HouseTotals, error) {
	return m.totals[id], nil
}

func seedHouse(repo *memHouseRepo, id, name, slug string) *entity.House {
	h := &entity.House{ID: id, Name: name, Slug: slug, IsActive: true}
	_ = repo.Create(h)
	return h
}

// ──────────────────────────────────────────────────────────────────────────────

func TestHouseCreate_NombreDuplicado(t *testing.T) {
	repo := newMemHouseRepo()
	uc := usecase.NewHouseUseCase(repo)
	seedHouse(repo, "h1", "Casa Norte", "casa-norte")

	_, err := uc.Create(dto.CreateHouseRequest{Name: "Casa Norte", Slug: "otro-slug"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre de casa es único global")

	_, err = uc.Create(dto.CreateHouseRequest{Name: "Otro Nombre", Slug: "casa-norte"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el slug de casa es único global")
}

func TestHouseCreate_NuevaCasaActiva(t *testing.T) {
	repo := newMemHouseRepo()
	uc := usecase.NewHouseUseCase(repo)

	out, err := uc.Create(dto.CreateHouseRequest{Name: "Casa Sur", Slug: "casa-sur"})
	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.NotEmpty(t, out.ID)
}

func TestHouseUpdate_PuedeConservarSuPropioNombre(t *testing.T) {
	repo := newMemHouseRepo()
	uc := usecase.NewHouseUseCase(repo)
	h := seedHouse(repo, "h1", "Casa Norte", "casa-norte")
	seedHouse(repo, "h2", "Casa Sur", "casa-sur")

	// Re-enviar el mismo nombre no debe chocar con la propia casa.
	mismo := "Casa Norte"
	out, err := uc.Update(h.ID, dto.UpdateHouseRequest{Name: &mismo})
	require.NoError(t, err)
	assert.Equal(t, "Casa Norte", out.Name)

	// Pero tomar el nombre de otra casa sí es duplicado.
	ajeno := "Casa Sur"
	_, err = uc.Update(h.ID, dto.UpdateHouseRequest{Name: &ajeno})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestHouseDelete_ConDatosAsociadosBloqueado(t *testing.T) {
	repo := newMemHouseRepo()
	uc := usecase.NewHouseUseCase(repo)
	h := seedHouse(repo, "h1", "Casa Norte", "casa-norte")
	repo.counts[h.ID] = entity.HouseCounts{Employees: 3}

	err := uc.Delete(h.ID)
	assert.ErrorIs(t, err, domain.ErrHouseHasData,
		"una casa con datos asociados nunca se borra en cascada")
	assert.Contains(t, repo.houses, h.ID)
}

func TestHouseDelete_VaciaSeElimina(t *testing.T) {
	repo := newMemHouseRepo()
	uc := usecase.NewHouseUseCase(repo)
	h := seedHouse(repo, "h1", "Casa Norte", "casa-norte")

	require.NoError(t, uc.Delete(h.ID))
	assert.NotContains(t, repo.houses, h.ID)
}

func TestHouseStats_IncluyeConteosYTotales(t *testing.T) {
	repo := newMemHouseRepo()
	uc := usecase.NewHouseUseCase(repo)
	h := seedHouse(repo, "h1", "Casa Norte", "casa-norte")
	repo.counts[h.ID] = entity.HouseCounts{Users: 2, Employees: 1, Payments: 4, Expenses: 7}
	repo.totals[h.ID] = repository.HouseTotals{
		Payments: decimal.RequireFromString("5200000"),
		Expenses: decimal.RequireFromString("830500.50"),
	}

	out, err := uc.Stats(h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa Norte", out.HouseName)
	assert.Equal(t, 4, out.Stats.Payments)
	assert.True(t, out.Stats.TotalPayments.Equal(decimal.RequireFromString("5200000")))
	assert.True(t, out.Stats.TotalExpenses.Equal(decimal.RequireFromString("830500.50")))
}

func TestHouseStats_CasaInexistente(t *testing.T) {
	repo := newMemHouseRepo()
	uc := usecase.NewHouseUseCase(repo)

	_, err := uc.Stats("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
