package geography

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	geoRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/geography"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/geography/models"
)

// Префиксы ключей кэша; мутация сущности сбрасывает все списки этого типа
const (
	keyCountries  = "geo:countries"
	keyStates     = "geo:states"
	keyDistricts  = "geo:districts"
	keyLocalities = "geo:localities"
)

// Service справочник Country -> State -> District -> Locality
// Списки кэшируются, ошибки кэша не ломают чтение из БД
type Service struct {
	repo   Repository
	cache  Cache
	logger Logger
}

// NewService создает сервис справочника географии
func NewService(repo Repository, cache Cache, logger Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// ---------- Country ----------

func (s *Service) CreateCountry(ctx context.Context, req *models.CountryRequest) (*models.Country, error) {
	c, err := countryFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateCountry(ctx, c)
	if err != nil {
		return nil, s.mapError("CreateCountry", err)
	}

	s.invalidate(ctx, keyCountries)
	s.logger.Info("CreateCountry: created country id=%d (%s)", created.ID, created.Name)
	resp := models.FromCountry(created)
	return &resp, nil
}

func (s *Service) GetCountry(ctx context.Context, id int64) (*models.Country, error) {
	c, err := s.repo.GetCountry(ctx, id)
	if err != nil {
		return nil, s.mapError("GetCountry", err)
	}
	resp := models.FromCountry(c)
	return &resp, nil
}

func (s *Service) ListCountries(ctx context.Context) ([]models.Country, error) {
	return cachedList(ctx, s, keyCountries, func(ctx context.Context) ([]models.Country, error) {
		countries, err := s.repo.ListCountries(ctx)
		if err != nil {
			return nil, s.mapError("ListCountries", err)
		}
		return models.ConvertList(countries, func(c *domain.Country) models.Country { return models.FromCountry(c) }), nil
	})
}

func (s *Service) UpdateCountry(ctx context.Context, id int64, req *models.CountryRequest) (*models.Country, error) {
	c, err := countryFromRequest(req)
	if err != nil {
		return nil, err
	}
	c.ID = id

	if err := s.repo.UpdateCountry(ctx, c); err != nil {
		return nil, s.mapError("UpdateCountry", err)
	}

	s.invalidate(ctx, keyCountries)
	return s.GetCountry(ctx, id)
}

func (s *Service) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCountry(ctx, id); err != nil {
		return s.mapError("DeleteCountry", err)
	}
	s.invalidate(ctx, keyCountries)
	s.logger.Info("DeleteCountry: deleted country id=%d", id)
	return nil
}

func countryFromRequest(req *models.CountryRequest) (*domain.Country, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || len(code) > 3 {
		return nil, fmt.Errorf("%w: code must be 1 to 3 characters", ErrInvalidInput)
	}
	return &domain.Country{Name: name, Code: code}, nil
}

// ---------- State ----------

func (s *Service) CreateState(ctx context.Context, req *models.StateRequest) (*models.State, error) {
	st, err := stateFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateState(ctx, st)
	if err != nil {
		return nil, s.mapError("CreateState", err)
	}

	s.invalidate(ctx, keyStates)
	s.logger.Info("CreateState: created state id=%d in country id=%d", created.ID, created.CountryID)
	resp := models.FromState(created)
	return &resp, nil
}

func (s *Service) GetState(ctx context.Context, id int64) (*models.State, error) {
	st, err := s.repo.GetState(ctx, id)
	if err != nil {
		return nil, s.mapError("GetState", err)
	}
	resp := models.FromState(st)
	return &resp, nil
}

func (s *Service) ListStates(ctx context.Context, countryID *int64) ([]models.State, error) {
	return cachedList(ctx, s, listKey(keyStates, "country", countryID), func(ctx context.Context) ([]models.State, error) {
		states, err := s.repo.ListStates(ctx, countryID)
		if err != nil {
			return nil, s.mapError("ListStates", err)
		}
		return models.ConvertList(states, func(st *domain.State) models.State { return models.FromState(st) }), nil
	})
}

func (s *Service) UpdateState(ctx context.Context, id int64, req *models.StateRequest) (*models.State, error) {
	st, err := stateFromRequest(req)
	if err != nil {
		return nil, err
	}
	st.ID = id

	if err := s.repo.UpdateState(ctx, st); err != nil {
		return nil, s.mapError("UpdateState", err)
	}

	s.invalidate(ctx, keyStates)
	return s.GetState(ctx, id)
}

func (s *Service) DeleteState(ctx context.Context, id int64) error {
	if err := s.repo.DeleteState(ctx, id); err != nil {
		return s.mapError("DeleteState", err)
	}
	s.invalidate(ctx, keyStates)
	s.logger.Info("DeleteState: deleted state id=%d", id)
	return nil
}

func stateFromRequest(req *models.StateRequest) (*domain.State, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.CountryID <= 0 {
		return nil, fmt.Errorf("%w: countryId is required", ErrInvalidInput)
	}
	return &domain.State{CountryID: req.CountryID, Name: name}, nil
}

// ---------- District ----------

func (s *Service) CreateDistrict(ctx context.Context, req *models.DistrictRequest) (*models.District, error) {
	d, err := districtFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateDistrict(ctx, d)
	if err != nil {
		return nil, s.mapError("CreateDistrict", err)
	}

	s.invalidate(ctx, keyDistricts)
	s.logger.Info("CreateDistrict: created district id=%d in state id=%d", created.ID, created.StateID)
	resp := models.FromDistrict(created)
	return &resp, nil
}

func (s *Service) GetDistrict(ctx context.Context, id int64) (*models.District, error) {
	d, err := s.repo.GetDistrict(ctx, id)
	if err != nil {
		return nil, s.mapError("GetDistrict", err)
	}
	resp := models.FromDistrict(d)
	return &resp, nil
}

func (s *Service) ListDistricts(ctx context.Context, stateID *int64) ([]models.District, error) {
	return cachedList(ctx, s, listKey(keyDistricts, "state", stateID), func(ctx context.Context) ([]models.District, error) {
		districts, err := s.repo.ListDistricts(ctx, stateID)
		if err != nil {
			return nil, s.mapError("ListDistricts", err)
		}
		return models.ConvertList(districts, func(d *domain.District) models.District { return models.FromDistrict(d) }), nil
	})
}

func (s *Service) UpdateDistrict(ctx context.Context, id int64, req *models.DistrictRequest) (*models.District, error) {
	d, err := districtFromRequest(req)
	if err != nil {
		return nil, err
	}
	d.ID = id

	if err := s.repo.UpdateDistrict(ctx, d); err != nil {
		return nil, s.mapError("UpdateDistrict", err)
	}

	s.invalidate(ctx, keyDistricts)
	return s.GetDistrict(ctx, id)
}

func (s *Service) DeleteDistrict(ctx context.Context, id int64) error {
	if err := s.repo.DeleteDistrict(ctx, id); err != nil {
		return s.mapError("DeleteDistrict", err)
	}
	s.invalidate(ctx, keyDistricts)
	s.logger.Info("DeleteDistrict: deleted district id=%d", id)
	return nil
}

func districtFromRequest(req *models.DistrictRequest) (*domain.District, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.StateID <= 0 {
		return nil, fmt.Errorf("%w: stateId is required", ErrInvalidInput)
	}
	return &domain.District{StateID: req.StateID, Name: name}, nil
}

// ---------- Locality ----------

func (s *Service) CreateLocality(ctx context.Context, req *models.LocalityRequest) (*models.Locality, error) {
	l, err := localityFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateLocality(ctx, l)
	if err != nil {
		return nil, s.mapError("CreateLocality", err)
	}

	s.invalidate(ctx, keyLocalities)
	s.logger.Info("CreateLocality: created locality id=%d in district id=%d", created.ID, created.DistrictID)
	resp := models.FromLocality(created)
	return &resp, nil
}

func (s *Service) GetLocality(ctx context.Context, id int64) (*models.Locality, error) {
	l, err := s.repo.GetLocality(ctx, id)
	if err != nil {
		return nil, s.mapError("GetLocality", err)
	}
	resp := models.FromLocality(l)
	return &resp, nil
}

func (s *Service) ListLocalities(ctx context.Context, districtID *int64) ([]models.Locality, error) {
	return cachedList(ctx, s, listKey(keyLocalities, "district", districtID), func(ctx context.Context) ([]models.Locality, error) {
		localities, err := s.repo.ListLocalities(ctx, districtID)
		if err != nil {
			return nil, s.mapError("ListLocalities", err)
		}
		return models.ConvertList(localities, func(l *domain.Locality) models.Locality { return models.FromLocality(l) }), nil
	})
}

func (s *Service) UpdateLocality(ctx context.Context, id int64, req *models.LocalityRequest) (*models.Locality, error) {
	l, err := localityFromRequest(req)
	if err != nil {
		return nil, err
	}
	l.ID = id

	if err := s.repo.UpdateLocality(ctx, l); err != nil {
		return nil, s.mapError("UpdateLocality", err)
	}

	s.invalidate(ctx, keyLocalities)
	return s.GetLocality(ctx, id)
}

func (s *Service) DeleteLocality(ctx context.Context, id int64) error {
	if err := s.repo.DeleteLocality(ctx, id); err != nil {
		return s.mapError("DeleteLocality", err)
	}
	s.invalidate(ctx, keyLocalities)
	s.logger.Info("DeleteLocality: deleted locality id=%d", id)
	return nil
}

func localityFromRequest(req *models.LocalityRequest) (*domain.Locality, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.DistrictID <= 0 {
		return nil, fmt.Errorf("%w: districtId is required", ErrInvalidInput)
	}

	var pincode *string
	if req.Pincode != nil {
		if p := strings.TrimSpace(*req.Pincode); p != "" {
			pincode = &p
		}
	}

	return &domain.Locality{DistrictID: req.DistrictID, Name: name, Pincode: pincode}, nil
}

// ---------- helpers ----------

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return name, nil
}

func listKey(prefix, parent string, parentID *int64) string {
	if parentID == nil {
		return prefix + ":all"
	}
	return fmt.Sprintf("%s:%s=%d", prefix, parent, *parentID)
}

// cachedList читает список из кэша, при промахе загружает из БД и кладет в кэш
func cachedList[T any](ctx context.Context, s *Service, key string, load func(ctx context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("cache: get %s failed: %v", key, err)
	}
	if hit && cached != nil {
		return cached, nil
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, items); err != nil {
		s.logger.Warn("cache: set %s failed: %v", key, err)
	}

	return items, nil
}

func (s *Service) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.InvalidatePrefix(ctx, prefix); err != nil {
		s.logger.Warn("cache: invalidate %s failed: %v", prefix, err)
	}
}

func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, geoRepo.ErrNotFound):
		s.logger.Warn("%s: not found", op)
		return ErrNotFound
	case errors.Is(err, geoRepo.ErrAlreadyExists):
		s.logger.Warn("%s: %v", op, err)
		return ErrAlreadyExists
	case errors.Is(err, geoRepo.ErrInvalidReference):
		s.logger.Warn("%s: %v", op, err)
		return ErrInvalidReference
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
