package geography

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var countryColumns = []string{"id", "name", "code", "created_at", "updated_at"}

func (r *Repository) CreateCountry(ctx context.Context, c *domain.Country) (*domain.Country, error) {
	b := psqlbuilder.Insert("countries").
		Columns("name", "code").
		Values(c.Name, c.Code).
		Suffix("RETURNING id, created_at, updated_at")

	if err := r.queryRow(ctx, "CreateCountry", b, &c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repository) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	var c domain.Country
	b := psqlbuilder.Select(countryColumns...).From("countries").Where(squirrel.Eq{"id": id})

	if err := r.queryRow(ctx, "GetCountry", b, &c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	countries := make([]*domain.Country, 0)
	b := psqlbuilder.Select(countryColumns...).From("countries").OrderBy("name ASC")

	err := r.query(ctx, "ListCountries", b, func(rows *sql.Rows) error {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		countries = append(countries, &c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *Repository) UpdateCountry(ctx context.Context, c *domain.Country) error {
	b := psqlbuilder.Update("countries").
		Set("name", c.Name).
		Set("code", c.Code).
		Set("updated_at", touch).
		Where(squirrel.Eq{"id": c.ID})
	return r.exec(ctx, "UpdateCountry", b)
}

// DeleteCountry удаляет страну; при наличии штатов вернет ErrInvalidReference
func (r *Repository) DeleteCountry(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteCountry", psqlbuilder.Delete("countries").Where(squirrel.Eq{"id": id}))
}
