package catalog

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var categoryColumns = []string{"id", "name", "description", "created_at", "updated_at"}

func (r *Repository) CreateCategory(ctx context.Context, c *domain.ServiceCategory) (*domain.ServiceCategory, error) {
	b := psqlbuilder.Insert("service_categories").
		Columns("name", "description").
		Values(c.Name, c.Description).
		Suffix("RETURNING id, created_at, updated_at")

	if err := r.queryRow(ctx, "CreateCategory", b, &c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	var description sql.NullString
	b := psqlbuilder.Select(categoryColumns...).From("service_categories").Where(squirrel.Eq{"id": id})

	if err := r.queryRow(ctx, "GetCategory", b, &c.ID, &c.Name, &description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Description = nullString(description)
	return &c, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error) {
	categories := make([]*domain.ServiceCategory, 0)
	b := psqlbuilder.Select(categoryColumns...).From("service_categories").OrderBy("name ASC")

	err := r.query(ctx, "ListCategories", b, func(rows *sql.Rows) error {
		var c domain.ServiceCategory
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		c.Description = nullString(description)
		categories = append(categories, &c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	b := psqlbuilder.Update("service_categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("updated_at", touch).
		Where(squirrel.Eq{"id": c.ID})
	return r.exec(ctx, "UpdateCategory", b)
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteCategory", psqlbuilder.Delete("service_categories").Where(squirrel.Eq{"id": id}))
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
