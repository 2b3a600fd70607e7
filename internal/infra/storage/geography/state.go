package geography

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var stateColumns = []string{"id", "country_id", "name", "created_at", "updated_at"}

func (r *Repository) CreateState(ctx context.Context, s *domain.State) (*domain.State, error) {
	b := psqlbuilder.Insert("states").
		Columns("country_id", "name").
		Values(s.CountryID, s.Name).
		Suffix("RETURNING id, created_at, updated_at")

	if err := r.queryRow(ctx, "CreateState", b, &s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) GetState(ctx context.Context, id int64) (*domain.State, error) {
	var s domain.State
	b := psqlbuilder.Select(stateColumns...).From("states").Where(squirrel.Eq{"id": id})

	if err := r.queryRow(ctx, "GetState", b, &s.ID, &s.CountryID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStates возвращает штаты, опционально только указанной страны
func (r *Repository) ListStates(ctx context.Context, countryID *int64) ([]*domain.State, error) {
	states := make([]*domain.State, 0)
	b := psqlbuilder.Select(stateColumns...).From("states").OrderBy("name ASC")
	if countryID != nil {
		b = b.Where(squirrel.Eq{"country_id": *countryID})
	}

	err := r.query(ctx, "ListStates", b, func(rows *sql.Rows) error {
		var s domain.State
		if err := rows.Scan(&s.ID, &s.CountryID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return err
		}
		states = append(states, &s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *Repository) UpdateState(ctx context.Context, s *domain.State) error {
	b := psqlbuilder.Update("states").
		Set("country_id", s.CountryID).
		Set("name", s.Name).
		Set("updated_at", touch).
		Where(squirrel.Eq{"id": s.ID})
	return r.exec(ctx, "UpdateState", b)
}

func (r *Repository) DeleteState(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteState", psqlbuilder.Delete("states").Where(squirrel.Eq{"id": id}))
}
