package catalog

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var typeColumns = []string{"id", "category_id", "name", "description", "base_price", "created_at", "updated_at"}

func (r *Repository) CreateServiceType(ctx context.Context, t *domain.ServiceType) (*domain.ServiceType, error) {
	b := psqlbuilder.Insert("service_types").
		Columns("category_id", "name", "description", "base_price").
		Values(t.CategoryID, t.Name, t.Description, t.BasePrice).
		Suffix("RETURNING id, created_at, updated_at")

	if err := r.queryRow(ctx, "CreateServiceType", b, &t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Repository) GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error) {
	b := psqlbuilder.Select(typeColumns...).From("service_types").Where(squirrel.Eq{"id": id})

	var t domain.ServiceType
	var description sql.NullString
	var basePrice sql.NullFloat64
	if err := r.queryRow(ctx, "GetServiceType", b,
		&t.ID, &t.CategoryID, &t.Name, &description, &basePrice, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Description = nullString(description)
	if basePrice.Valid {
		t.BasePrice = &basePrice.Float64
	}
	return &t, nil
}

// ListServiceTypes возвращает типы услуг, опционально только указанной категории
func (r *Repository) ListServiceTypes(ctx context.Context, categoryID *int64) ([]*domain.ServiceType, error) {
	types := make([]*domain.ServiceType, 0)
	b := psqlbuilder.Select(typeColumns...).From("service_types").OrderBy("name ASC")
	if categoryID != nil {
		b = b.Where(squirrel.Eq{"category_id": *categoryID})
	}

	err := r.query(ctx, "ListServiceTypes", b, func(rows *sql.Rows) error {
		var t domain.ServiceType
		var description sql.NullString
		var basePrice sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name, &description, &basePrice, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return err
		}
		t.Description = nullString(description)
		if basePrice.Valid {
			t.BasePrice = &basePrice.Float64
		}
		types = append(types, &t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *Repository) UpdateServiceType(ctx context.Context, t *domain.ServiceType) error {
	b := psqlbuilder.Update("service_types").
		Set("category_id", t.CategoryID).
		Set("name", t.Name).
		Set("description", t.Description).
		Set("base_price", t.BasePrice).
		Set("updated_at", touch).
		Where(squirrel.Eq{"id": t.ID})
	return r.exec(ctx, "UpdateServiceType", b)
}

func (r *Repository) DeleteServiceType(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteServiceType", psqlbuilder.Delete("service_types").Where(squirrel.Eq{"id": id}))
}
