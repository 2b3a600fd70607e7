package geography

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// Repository интерфейс репозитория справочника географии
type Repository interface {
	CreateCountry(ctx context.Context, c *domain.Country) (*domain.Country, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	ListCountries(ctx context.Context) ([]*domain.Country, error)
	UpdateCountry(ctx context.Context, c *domain.Country) error
	DeleteCountry(ctx context.Context, id int64) error

	CreateState(ctx context.Context, s *domain.State) (*domain.State, error)
	GetState(ctx context.Context, id int64) (*domain.State, error)
	ListStates(ctx context.Context, countryID *int64) ([]*domain.State, error)
	UpdateState(ctx context.Context, s *domain.State) error
	DeleteState(ctx context.Context, id int64) error

	CreateDistrict(ctx context.Context, d *domain.District) (*domain.District, error)
	GetDistrict(ctx context.Context, id int64) (*domain.District, error)
	ListDistricts(ctx context.Context, stateID *int64) ([]*domain.District, error)
	UpdateDistrict(ctx context.Context, d *domain.District) error
	DeleteDistrict(ctx context.Context, id int64) error

	CreateLocality(ctx context.Context, l *domain.Locality) (*domain.Locality, error)
	GetLocality(ctx context.Context, id int64) (*domain.Locality, error)
	ListLocalities(ctx context.Context, districtID *int64) ([]*domain.Locality, error)
	UpdateLocality(ctx context.Context, l *domain.Locality) error
	DeleteLocality(ctx context.Context, id int64) error
}

// Cache кэш списков справочника
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
