package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

type Reserver interface {
	Reserve(ctx context.Context, slotID, userID uint, at time.Time) (*domain.Booking, *domain.TimeSlot, error)
}

type BookingStore interface {
	ByID(ctx context.Context, id uint) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id uint) error
	ByUser(ctx context.Context, userID uint) ([]domain.Booking, error)
	All(ctx context.Context) ([]domain.Booking, error)
	Upcoming(ctx context.Context, from time.Time) ([]domain.Booking, error)
}

type BookingSvc struct {
	ledger Reserver
	store  BookingStore
	notify Notifier
	now    func() time.Time
}

func NewBookingSvc(l Reserver, s BookingStore, n Notifier) *BookingSvc {
	if n == nil {
		n = Fanout{}
	}
	return &BookingSvc{ledger: l, store: s, notify: n, now: func() time.Time { return time.Now().UTC() }}
}

// Book reserves slotID for the caller. The reservation is committed before
// subscribers are told; a failed notification never undoes it.
func (s *BookingSvc) Book(ctx context.Context, who domain.Identity, slotID uint) (*domain.Booking, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	b, slot, err := s.ledger.Reserve(ctx, slotID, who.UserID, s.now())
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"booking_id": b.ID, "slot_id": slotID, "user_id": who.UserID})
	log.Info("slot booked")

	ev := domain.SlotBooked{
		BookingID: b.ID,
		SlotID:    slotID,
		TurfID:    slot.TurfID,
		UserID:    who.UserID,
		Start:     slot.StartTime,
		End:       slot.EndTime,
	}
	if err := s.notify.SlotBooked(ctx, ev); err != nil {
		log.WithError(err).Warn("slot booked notification failed")
	}
	return b, nil
}

// MarkPaid records full payment. Repeating it is a no-op success.
func (s *BookingSvc) MarkPaid(ctx context.Context, who domain.Identity, bookingID uint) error {
	if err := requireAdmin(who); err != nil {
		return err
	}
	if err := s.store.MarkPaid(ctx, bookingID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"booking_id": bookingID, "admin_id": who.UserID}).Info("booking marked paid")
	if err := s.notify.BookingPaid(ctx, domain.BookingPaid{BookingID: bookingID, AdminID: who.UserID}); err != nil {
		logrus.WithError(err).WithField("booking_id", bookingID).Warn("booking paid notification failed")
	}
	return nil
}

func (s *BookingSvc) Get(ctx context.Context, who domain.Identity, id uint) (*domain.Booking, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	b, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != who.UserID && !who.IsAdmin {
		// other users' bookings are indistinguishable from missing ones
		return nil, domain.ErrBookingNotFound
	}
	return b, nil
}

func (s *BookingSvc) UserBookings(ctx context.Context, who domain.Identity) ([]domain.Booking, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	return s.store.ByUser(ctx, who.UserID)
}

func (s *BookingSvc) AllBookings(ctx context.Context, who domain.Identity) ([]domain.Booking, error) {
	if err := requireAdmin(who); err != nil {
		return nil, err
	}
	return s.store.All(ctx)
}

func (s *BookingSvc) Upcoming(ctx context.Context, who domain.Identity) ([]domain.Booking, error) {
	if err := requireAdmin(who); err != nil {
		return nil, err
	}
	return s.store.Upcoming(ctx, s.now())
}

func requireAdmin(who domain.Identity) error {
	if !who.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !who.IsAdmin {
		return domain.ErrAdminOnly
	}
	return nil
}
