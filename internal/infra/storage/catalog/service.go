package catalog

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"service_provider_id",
	"service_type_id",
	"name",
	"description",
	"price",
	"duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// ServiceFilter фильтр списка услуг
type ServiceFilter struct {
	ServiceProviderID *int64
	ServiceTypeID     *int64
	OnlyActive        bool
}

func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	b := psqlbuilder.Insert("services").
		Columns("service_provider_id", "service_type_id", "name", "description", "price", "duration_minutes", "is_active").
		Values(s.ServiceProviderID, s.ServiceTypeID, s.Name, s.Description, s.Price, s.DurationMinutes, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at")

	if err := r.queryRow(ctx, "CreateService", b, &s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	b := psqlbuilder.Select(serviceColumns...).From("services").Where(squirrel.Eq{"id": id})

	var s domain.Service
	var description sql.NullString
	var duration sql.NullInt64
	if err := r.queryRow(ctx, "GetService", b,
		&s.ID, &s.ServiceProviderID, &s.ServiceTypeID, &s.Name, &description,
		&s.Price, &duration, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Description = nullString(description)
	s.DurationMinutes = nullInt(duration)
	return &s, nil
}

func (r *Repository) ListServices(ctx context.Context, filter ServiceFilter) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)
	b := psqlbuilder.Select(serviceColumns...).From("services").OrderBy("name ASC", "id ASC")
	if filter.ServiceProviderID != nil {
		b = b.Where(squirrel.Eq{"service_provider_id": *filter.ServiceProviderID})
	}
	if filter.ServiceTypeID != nil {
		b = b.Where(squirrel.Eq{"service_type_id": *filter.ServiceTypeID})
	}
	if filter.OnlyActive {
		b = b.Where(squirrel.Eq{"is_active": true})
	}

	err := r.query(ctx, "ListServices", b, func(rows *sql.Rows) error {
		var s domain.Service
		var description sql.NullString
		var duration sql.NullInt64
		if err := rows.Scan(
			&s.ID, &s.ServiceProviderID, &s.ServiceTypeID, &s.Name, &description,
			&s.Price, &duration, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return err
		}
		s.Description = nullString(description)
		s.DurationMinutes = nullInt(duration)
		services = append(services, &s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *Repository) UpdateService(ctx context.Context, s *domain.Service) error {
	b := psqlbuilder.Update("services").
		Set("service_type_id", s.ServiceTypeID).
		Set("name", s.Name).
		Set("description", s.Description).
		Set("price", s.Price).
		Set("duration_minutes", s.DurationMinutes).
		Set("is_active", s.IsActive).
		Set("updated_at", touch).
		Where(squirrel.Eq{"id": s.ID})
	return r.exec(ctx, "UpdateService", b)
}

func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteService", psqlbuilder.Delete("services").Where(squirrel.Eq{"id": id}))
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
