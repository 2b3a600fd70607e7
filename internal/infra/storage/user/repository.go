package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/dbmetrics"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/pgerr"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"external_uid",
	"email",
	"password_hash",
	"full_name",
	"phone_number",
	"role",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя; email хранится в нижнем регистре, пустой email сохраняется как NULL
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	u.Email = normalizeEmail(u.Email)

	query, args, err := psqlbuilder.Insert("users").
		Columns("external_uid", "email", "password_hash", "full_name", "phone_number", "role", "is_active").
		Values(u.ExternalUID, u.Email, u.PasswordHash, u.FullName, u.PhoneNumber, u.Role, u.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserAlreadyExists, pgerr.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает пользователя по email (без учета регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "GetByEmail", squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

// GetByExternalUID получает пользователя по UID внешнего провайдера
func (r *Repository) GetByExternalUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.getBy(ctx, "GetByExternalUID", squirrel.Eq{"external_uid": uid})
}

func (r *Repository) getBy(ctx context.Context, op string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var u domain.User
	var externalUID, email, passwordHash, phone sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&externalUID,
		&email,
		&passwordHash,
		&u.FullName,
		&phone,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	u.ExternalUID = nullString(externalUID)
	u.Email = nullString(email)
	u.PasswordHash = nullString(passwordHash)
	u.PhoneNumber = nullString(phone)

	return &u, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}
