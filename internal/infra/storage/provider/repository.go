package provider

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/dbmetrics"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/pgerr"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"user_id",
	"company_name",
	"description",
	"average_rating",
	"total_ratings",
	"is_verified",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей провайдеров и их зон обслуживания
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профиль провайдера
func (r *Repository) Create(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_providers").
		Columns("user_id", "company_name", "description").
		Values(p.UserID, p.CompanyName, p.Description).
		Suffix("RETURNING id, average_rating, total_ratings, is_verified, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.AverageRating, &p.TotalRatings, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapExecError("Create", err)
	}

	return p, nil
}

// GetByID получает профиль провайдера вместе со списком локаций
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceProvider, error) {
	return r.getBy(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает профиль провайдера по пользователю
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.ServiceProvider, error) {
	return r.getBy(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

func (r *Repository) getBy(ctx context.Context, op string, where squirrel.Eq) (*domain.ServiceProvider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("service_providers").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.ServiceProvider
	var company, description sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.UserID,
		&company,
		&description,
		&p.AverageRating,
		&p.TotalRatings,
		&p.IsVerified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan provider: %v", ErrScanRow, op, err)
	}

	if company.Valid {
		p.CompanyName = &company.String
	}
	if description.Valid {
		p.Description = &description.String
	}

	p.LocalityIDs, err = r.localityIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateProfile обновляет название компании и описание
func (r *Repository) UpdateProfile(ctx context.Context, p *domain.ServiceProvider) error {
	return r.update(ctx, "UpdateProfile", p.ID, map[string]interface{}{
		"company_name": p.CompanyName,
		"description":  p.Description,
	})
}

// UpdateRating записывает пересчитанный рейтинг
func (r *Repository) UpdateRating(ctx context.Context, id int64, summary domain.RatingSummary) error {
	return r.update(ctx, "UpdateRating", id, map[string]interface{}{
		"average_rating": summary.AverageRating,
		"total_ratings":  summary.TotalRatings,
	})
}

// SetVerified меняет признак верификации
func (r *Repository) SetVerified(ctx context.Context, id int64, verified bool) error {
	return r.update(ctx, "SetVerified", id, map[string]interface{}{
		"is_verified": verified,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, set map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_providers").
		SetMap(set).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapExecError(op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}

// ReplaceLocalities заменяет набор локаций провайдера
// Должен вызываться внутри транзакции
func (r *Repository) ReplaceLocalities(ctx context.Context, providerID int64, localityIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("provider_localities").
		Where(squirrel.Eq{"service_provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceLocalities - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapExecError("ReplaceLocalities", err)
	}

	if len(localityIDs) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("provider_localities").
		Columns("service_provider_id", "locality_id")
	for _, id := range localityIDs {
		insert = insert.Values(providerID, id)
	}

	query, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceLocalities - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapExecError("ReplaceLocalities", err)
	}

	return nil
}

func (r *Repository) localityIDs(ctx context.Context, providerID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("locality_id").
		From("provider_localities").
		Where(squirrel.Eq{"service_provider_id": providerID}).
		OrderBy("locality_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: localityIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: localityIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: localityIDs - scan locality_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: localityIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func mapExecError(op string, err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s - %s", ErrProviderAlreadyExists, op, pgerr.Constraint(err))
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s - %s", ErrInvalidReference, op, pgerr.Constraint(err))
	default:
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
}
