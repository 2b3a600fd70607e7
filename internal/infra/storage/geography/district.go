package geography

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var districtColumns = []string{"id", "state_id", "name", "created_at", "updated_at"}

func (r *Repository) CreateDistrict(ctx context.Context, d *domain.District) (*domain.District, error) {
	b := psqlbuilder.Insert("districts").
		Columns("state_id", "name").
		Values(d.StateID, d.Name).
		Suffix("RETURNING id, created_at, updated_at")

	if err := r.queryRow(ctx, "CreateDistrict", b, &d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repository) GetDistrict(ctx context.Context, id int64) (*domain.District, error) {
	var d domain.District
	b := psqlbuilder.Select(districtColumns...).From("districts").Where(squirrel.Eq{"id": id})

	if err := r.queryRow(ctx, "GetDistrict", b, &d.ID, &d.StateID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) ListDistricts(ctx context.Context, stateID *int64) ([]*domain.District, error) {
	districts := make([]*domain.District, 0)
	b := psqlbuilder.Select(districtColumns...).From("districts").OrderBy("name ASC")
	if stateID != nil {
		b = b.Where(squirrel.Eq{"state_id": *stateID})
	}

	err := r.query(ctx, "ListDistricts", b, func(rows *sql.Rows) error {
		var d domain.District
		if err := rows.Scan(&d.ID, &d.StateID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return err
		}
		districts = append(districts, &d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return districts, nil
}

func (r *Repository) UpdateDistrict(ctx context.Context, d *domain.District) error {
	b := psqlbuilder.Update("districts").
		Set("state_id", d.StateID).
		Set("name", d.Name).
		Set("updated_at", touch).
		Where(squirrel.Eq{"id": d.ID})
	return r.exec(ctx, "UpdateDistrict", b)
}

func (r *Repository) DeleteDistrict(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteDistrict", psqlbuilder.Delete("districts").Where(squirrel.Eq{"id": id}))
}
