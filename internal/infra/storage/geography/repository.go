package geography

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/pkg/dbmetrics"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/pgerr"
)

// Repository репозиторий справочника географии
// Country -> State -> District -> Locality
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

type sqlizer interface {
	ToSql() (string, []interface{}, error)
}

// queryRow выполняет запрос, возвращающий одну строку, и сканирует её в dest
func (r *Repository) queryRow(ctx context.Context, op string, b sqlizer, dest ...interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build query: %v", ErrBuildQuery, op, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return mapExecError(op, err)
	}

	return nil
}

// query выполняет запрос и вызывает scan для каждой строки
func (r *Repository) query(ctx context.Context, op string, b sqlizer, scan func(rows *sql.Rows) error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return nil
}

// exec выполняет UPDATE/DELETE и проверяет, что строка существовала
func (r *Repository) exec(ctx context.Context, op string, b sqlizer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build query: %v", ErrBuildQuery, op, err)
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
		return ErrNotFound
	}

	return nil
}

func mapExecError(op string, err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s - %s", ErrAlreadyExists, op, pgerr.Constraint(err))
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s - %s", ErrInvalidReference, op, pgerr.Constraint(err))
	default:
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
}

var touch = squirrel.Expr("NOW()")
