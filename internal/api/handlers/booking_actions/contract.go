package booking_actions

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error)
	Reject(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error)
	Complete(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error)
	Cancel(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
