package geography

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var localityColumns = []string{"id", "district_id", "name", "pincode", "created_at", "updated_at"}

func (r *Repository) CreateLocality(ctx context.Context, l *domain.Locality) (*domain.Locality, error) {
	b := psqlbuilder.Insert("localities").
		Columns("district_id", "name", "pincode").
		Values(l.DistrictID, l.Name, l.Pincode).
		Suffix("RETURNING id, created_at, updated_at")

	if err := r.queryRow(ctx, "CreateLocality", b, &l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Repository) GetLocality(ctx context.Context, id int64) (*domain.Locality, error) {
	var l domain.Locality
	var pincode sql.NullString
	b := psqlbuilder.Select(localityColumns...).From("localities").Where(squirrel.Eq{"id": id})

	if err := r.queryRow(ctx, "GetLocality", b, &l.ID, &l.DistrictID, &l.Name, &pincode, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if pincode.Valid {
		l.Pincode = &pincode.String
	}
	return &l, nil
}

func (r *Repository) ListLocalities(ctx context.Context, districtID *int64) ([]*domain.Locality, error) {
	localities := make([]*domain.Locality, 0)
	b := psqlbuilder.Select(localityColumns...).From("localities").OrderBy("name ASC")
	if districtID != nil {
		b = b.Where(squirrel.Eq{"district_id": *districtID})
	}

	err := r.query(ctx, "ListLocalities", b, func(rows *sql.Rows) error {
		var l domain.Locality
		var pincode sql.NullString
		if err := rows.Scan(&l.ID, &l.DistrictID, &l.Name, &pincode, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return err
		}
		if pincode.Valid {
			l.Pincode = &pincode.String
		}
		localities = append(localities, &l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return localities, nil
}

// CountExisting возвращает, сколько из переданных id существует
func (r *Repository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	var n int
	b := psqlbuilder.Select("COUNT(*)").From("localities").Where(squirrel.Eq{"id": ids})

	if err := r.queryRow(ctx, "CountExisting", b, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) UpdateLocality(ctx context.Context, l *domain.Locality) error {
	b := psqlbuilder.Update("localities").
		Set("district_id", l.DistrictID).
		Set("name", l.Name).
		Set("pincode", l.Pincode).
		Set("updated_at", touch).
		Where(squirrel.Eq{"id": l.ID})
	return r.exec(ctx, "UpdateLocality", b)
}

func (r *Repository) DeleteLocality(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteLocality", psqlbuilder.Delete("localities").Where(squirrel.Eq{"id": id}))
}
