package servicerequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/dbmetrics"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/pgerr"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/psqlbuilder"
)

const tableName = "service_requests"

// Координаты хранятся в колонке location типа geography(Point,4326)
var columns = []string{
	"id",
	"consumer_id",
	"service_provider_id",
	"service_type_id",
	"ST_Y(location::geometry) AS latitude",
	"ST_X(location::geometry) AS longitude",
	"service_address",
	"status",
	"otp_code",
	"total_cost",
	"payment_status",
	"requested_at",
	"accepted_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

func point(p domain.GeoPoint) squirrel.Sqlizer {
	return squirrel.Expr("ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography", p.Longitude, p.Latitude)
}

// Repository репозиторий заявок на услуги
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку
func (r *Repository) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"consumer_id",
			"service_type_id",
			"location",
			"service_address",
			"status",
			"otp_code",
			"payment_status",
			"requested_at",
		).
		Values(
			req.ConsumerID,
			req.ServiceTypeID,
			point(req.Location),
			req.ServiceAddress,
			req.Status,
			req.OTPCode,
			req.PaymentStatus,
			req.RequestedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, mapExecError("Create", err)
	}

	return req, nil
}

// GetByID получает заявку по ID; внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
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

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// List возвращает заявки по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.ServiceRequestFilter) ([]*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("requested_at DESC", "id DESC").
		Limit(domain.NormalizeLimit(filter.Limit)).
		Offset(filter.Offset)

	if filter.ConsumerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"consumer_id": *filter.ConsumerID})
	}
	if filter.ServiceProviderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_provider_id": *filter.ServiceProviderID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.ServiceRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// Nearby ищет неназначенные заявки в статусе PENDING в радиусе от точки,
// ближайшие первыми
func (r *Repository) Nearby(ctx context.Context, q domain.NearbyQuery) ([]*domain.NearbyServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	center := q.Center

	selectBuilder := psqlbuilder.Select(columns...).
		Column(squirrel.Expr("ST_Distance(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography) / 1000.0 AS distance_km",
			center.Longitude, center.Latitude)).
		From(tableName).
		Where(squirrel.Eq{"status": domain.RequestPending}).
		Where(squirrel.Eq{"service_provider_id": nil}).
		Where(squirrel.Expr("ST_DWithin(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
			center.Longitude, center.Latitude, q.RadiusKm*1000)).
		OrderBy("distance_km ASC").
		Limit(domain.NormalizeLimit(q.Limit))

	if q.ServiceTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_type_id": *q.ServiceTypeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Nearby - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Nearby - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.NearbyServiceRequest, 0)
	for rows.Next() {
		var distance float64
		req, err := scanRequest(rows, &distance)
		if err != nil {
			return nil, fmt.Errorf("%w: Nearby - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &domain.NearbyServiceRequest{Request: req, DistanceKm: distance})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Nearby - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Update сохраняет изменения статуса, назначения и оплаты
func (r *Repository) Update(ctx context.Context, req *domain.ServiceRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("service_provider_id", req.ServiceProviderID).
		Set("status", req.Status).
		Set("total_cost", req.TotalCost).
		Set("payment_status", req.PaymentStatus).
		Set("accepted_at", req.AcceptedAt).
		Set("completed_at", req.CompletedAt).
		Set("cancelled_at", req.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrRequestNotFound
	}
	if err != nil {
		return mapExecError("Update", err)
	}

	return nil
}

func mapExecError(op string, err error) error {
	if pgerr.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s - %s", ErrInvalidReference, op, pgerr.Constraint(err))
	}
	return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequest сканирует строку с колонками columns и дополнительными extra
func scanRequest(row rowScanner, extra ...interface{}) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	var providerID sql.NullInt64
	var totalCost sql.NullFloat64
	var acceptedAt, completedAt, cancelledAt sql.NullTime

	dest := []interface{}{
		&req.ID,
		&req.ConsumerID,
		&providerID,
		&req.ServiceTypeID,
		&req.Location.Latitude,
		&req.Location.Longitude,
		&req.ServiceAddress,
		&req.Status,
		&req.OTPCode,
		&totalCost,
		&req.PaymentStatus,
		&req.RequestedAt,
		&acceptedAt,
		&completedAt,
		&cancelledAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if providerID.Valid {
		req.ServiceProviderID = &providerID.Int64
	}
	if totalCost.Valid {
		req.TotalCost = &totalCost.Float64
	}
	req.AcceptedAt = nullTime(acceptedAt)
	req.CompletedAt = nullTime(completedAt)
	req.CancelledAt = nullTime(cancelledAt)

	return &req, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
