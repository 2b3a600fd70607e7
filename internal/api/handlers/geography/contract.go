package geography

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/service/geography/models"
)

type GeographyService interface {
	CreateCountry(ctx context.Context, req *models.CountryRequest) (*models.Country, error)
	GetCountry(ctx context.Context, id int64) (*models.Country, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
	UpdateCountry(ctx context.Context, id int64, req *models.CountryRequest) (*models.Country, error)
	DeleteCountry(ctx context.Context, id int64) error

	CreateState(ctx context.Context, req *models.StateRequest) (*models.State, error)
	GetState(ctx context.Context, id int64) (*models.State, error)
	ListStates(ctx context.Context, countryID *int64) ([]models.State, error)
	UpdateState(ctx context.Context, id int64, req *models.StateRequest) (*models.State, error)
	DeleteState(ctx context.Context, id int64) error

	CreateDistrict(ctx context.Context, req *models.DistrictRequest) (*models.District, error)
	GetDistrict(ctx context.Context, id int64) (*models.District, error)
	ListDistricts(ctx context.Context, stateID *int64) ([]models.District, error)
	UpdateDistrict(ctx context.Context, id int64, req *models.DistrictRequest) (*models.District, error)
	DeleteDistrict(ctx context.Context, id int64) error

	CreateLocality(ctx context.Context, req *models.LocalityRequest) (*models.Locality, error)
	GetLocality(ctx context.Context, id int64) (*models.Locality, error)
	ListLocalities(ctx context.Context, districtID *int64) ([]models.Locality, error)
	UpdateLocality(ctx context.Context, id int64, req *models.LocalityRequest) (*models.Locality, error)
	DeleteLocality(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
