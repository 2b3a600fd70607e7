package geography

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	geoRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/geography"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/geography/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

// memoryCache хранит JSON так же, как Redis реализация
type memoryCache struct {
	data    map[string][]byte
	failGet bool
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.failGet {
		return false, errors.New("connection refused")
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) InvalidatePrefix(_ context.Context, prefix string) error {
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

// fakeRepo реализует только то, что нужно тестам; остальные методы из встроенного интерфейса
type fakeRepo struct {
	Repository
	countries  []*domain.Country
	states     []*domain.State
	listCalls  int
	createErr  error
	deleteErr  error
	updateSeen *domain.State
}

func (f *fakeRepo) CreateCountry(_ context.Context, c *domain.Country) (*domain.Country, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = int64(len(f.countries) + 1)
	f.countries = append(f.countries, c)
	return c, nil
}

func (f *fakeRepo) ListCountries(context.Context) ([]*domain.Country, error) {
	f.listCalls++
	return f.countries, nil
}

func (f *fakeRepo) DeleteCountry(context.Context, int64) error {
	return f.deleteErr
}

func (f *fakeRepo) ListStates(_ context.Context, countryID *int64) ([]*domain.State, error) {
	f.listCalls++
	result := make([]*domain.State, 0)
	for _, s := range f.states {
		if countryID == nil || s.CountryID == *countryID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateState(_ context.Context, s *domain.State) error {
	f.updateSeen = s
	for i, existing := range f.states {
		if existing.ID == s.ID {
			f.states[i] = s
			return nil
		}
	}
	return geoRepo.ErrNotFound
}

func (f *fakeRepo) GetState(_ context.Context, id int64) (*domain.State, error) {
	for _, s := range f.states {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, geoRepo.ErrNotFound
}

func newService() (*Service, *fakeRepo, *memoryCache) {
	repo := &fakeRepo{}
	cache := &memoryCache{data: map[string][]byte{}}
	return NewService(repo, cache, logger.NewNop()), repo, cache
}

func TestListCountries_CachedUntilMutation(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateCountry(ctx, &models.CountryRequest{Name: "India", Code: "in"})
	require.NoError(t, err)

	first, err := svc.ListCountries(ctx)
	require.NoError(t, err)
	second, err := svc.ListCountries(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, first, second)
	assert.Equal(t, "IN", second[0].Code)

	_, err = svc.CreateCountry(ctx, &models.CountryRequest{Name: "Nepal", Code: "NP"})
	require.NoError(t, err)

	third, err := svc.ListCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Len(t, third, 2)
}

func TestListCountries_CacheFailureFallsBackToRepository(t *testing.T) {
	svc, repo, cache := newService()
	cache.failGet = true
	repo.countries = []*domain.Country{{ID: 1, Name: "India", Code: "IN"}}

	list, err := svc.ListCountries(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListStates_KeyedByParent(t *testing.T) {
	svc, repo, cache := newService()
	repo.states = []*domain.State{
		{ID: 1, CountryID: 1, Name: "Karnataka"},
		{ID: 2, CountryID: 2, Name: "Bagmati"},
	}
	ctx := context.Background()

	byCountry, err := svc.ListStates(ctx, ptr.Ptr(int64(1)))
	require.NoError(t, err)
	require.Len(t, byCountry, 1)

	all, err := svc.ListStates(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Contains(t, cache.data, "geo:states:country=1")
	assert.Contains(t, cache.data, "geo:states:all")

	_, err = svc.UpdateState(ctx, 2, &models.StateRequest{CountryID: 1, Name: " Bagmati Province "})
	require.NoError(t, err)
	assert.Equal(t, "Bagmati Province", repo.updateSeen.Name)
	assert.NotContains(t, cache.data, "geo:states:country=1")
	assert.NotContains(t, cache.data, "geo:states:all")

	byCountry, err = svc.ListStates(ctx, ptr.Ptr(int64(1)))
	require.NoError(t, err)
	assert.Len(t, byCountry, 2)
}

func TestErrorMapping(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.createErr = geoRepo.ErrAlreadyExists
	_, err := svc.CreateCountry(ctx, &models.CountryRequest{Name: "India", Code: "IN"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	repo.deleteErr = geoRepo.ErrInvalidReference
	assert.ErrorIs(t, svc.DeleteCountry(ctx, 1), ErrInvalidReference)

	repo.deleteErr = errors.New("boom")
	assert.ErrorIs(t, svc.DeleteCountry(ctx, 1), ErrInternal)

	_, err = svc.UpdateState(ctx, 9, &models.StateRequest{CountryID: 1, Name: "Goa"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateCountry(ctx, &models.CountryRequest{Name: "  ", Code: "IN"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateCountry(ctx, &models.CountryRequest{Name: "India", Code: "INDIA"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateState(ctx, &models.StateRequest{Name: "Goa"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateLocality(ctx, &models.LocalityRequest{DistrictID: 0, Name: "Indiranagar"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
