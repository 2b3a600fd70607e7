package review

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

const (
	tableName      = "ratings_reviews"
	votesTableName = "review_helpful_votes"
)

var columns = []string{
	"id",
	"service_request_id",
	"consumer_id",
	"service_provider_id",
	"rating",
	"review_text",
	"is_verified",
	"helpful_count",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв; повторный отзыв на ту же заявку вернет ErrReviewAlreadyExists
func (r *Repository) Create(ctx context.Context, rv *domain.RatingReview) (*domain.RatingReview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("service_request_id", "consumer_id", "service_provider_id", "rating", "review_text", "is_verified").
		Values(rv.ServiceRequestID, rv.ConsumerID, rv.ServiceProviderID, rv.Rating, rv.ReviewText, rv.IsVerified).
		Suffix("RETURNING id, helpful_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rv.ID, &rv.HelpfulCount, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, mapExecError("Create", err)
	}

	return rv, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RatingReview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rv, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %v", ErrScanRow, err)
	}

	return rv, nil
}

// ListByProvider возвращает отзывы о провайдере, новые первыми
func (r *Repository) ListByProvider(ctx context.Context, providerID int64, limit, offset uint64) ([]*domain.RatingReview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"service_provider_id": providerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(domain.NormalizeLimit(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.RatingReview, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %v", ErrScanRow, err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// VerifiedRatings возвращает оценки всех подтвержденных отзывов провайдера
func (r *Repository) VerifiedRatings(ctx context.Context, providerID int64) ([]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating").
		From(tableName).
		Where(squirrel.Eq{"service_provider_id": providerID, "is_verified": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: VerifiedRatings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: VerifiedRatings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ratings := make([]int, 0)
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("%w: VerifiedRatings - scan rating: %v", ErrScanRow, err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: VerifiedRatings - rows error: %v", ErrScanRow, err)
	}

	return ratings, nil
}

// Update сохраняет оценку и текст
func (r *Repository) Update(ctx context.Context, rv *domain.RatingReview) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("rating", rv.Rating).
		Set("review_text", rv.ReviewText).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rv.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rv.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrReviewNotFound
	}
	if err != nil {
		return mapExecError("Update", err)
	}

	return nil
}

// AddHelpfulVote записывает голос пользователя за отзыв
// Возвращает false, если пользователь уже голосовал
func (r *Repository) AddHelpfulVote(ctx context.Context, id, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(votesTableName).
		Columns("review_id", "user_id").
		Values(id, userID).
		Suffix("ON CONFLICT (review_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: AddHelpfulVote - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, mapExecError("AddHelpfulVote", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: AddHelpfulVote - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// IncrementHelpful увеличивает счетчик "полезно" и возвращает новое значение
func (r *Repository) IncrementHelpful(ctx context.Context, id int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("helpful_count", squirrel.Expr("helpful_count + 1")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING helpful_count").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementHelpful - build update query: %v", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, ErrReviewNotFound
	}
	if err != nil {
		return 0, mapExecError("IncrementHelpful", err)
	}

	return count, nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapExecError("Delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func mapExecError(op string, err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s - %s", ErrReviewAlreadyExists, op, pgerr.Constraint(err))
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s - %s", ErrInvalidReference, op, pgerr.Constraint(err))
	default:
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.RatingReview, error) {
	var rv domain.RatingReview
	var text sql.NullString

	err := row.Scan(
		&rv.ID,
		&rv.ServiceRequestID,
		&rv.ConsumerID,
		&rv.ServiceProviderID,
		&rv.Rating,
		&text,
		&rv.IsVerified,
		&rv.HelpfulCount,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if text.Valid {
		rv.ReviewText = &text.String
	}

	return &rv, nil
}
