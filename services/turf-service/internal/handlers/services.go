package handlers

import (
	"context"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

type TurfService interface {
	List(ctx context.Context) ([]domain.Turf, error)
	Get(ctx context.Context, id uint) (*domain.Turf, error)
	Slots(ctx context.Context, turfID uint) ([]domain.TimeSlot, error)
	Slot(ctx context.Context, id uint) (*domain.TimeSlot, error)
}

type BookingService interface {
	Book(ctx context.Context, who domain.Identity, slotID uint) (*domain.Booking, error)
	MarkPaid(ctx context.Context, who domain.Identity, bookingID uint) error
	UserBookings(ctx context.Context, who domain.Identity) ([]domain.Booking, error)
	AllBookings(ctx context.Context, who domain.Identity) ([]domain.Booking, error)
	Upcoming(ctx context.Context, who domain.Identity) ([]domain.Booking, error)
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	User(ctx context.Context, id uint) (*domain.User, error)
}
