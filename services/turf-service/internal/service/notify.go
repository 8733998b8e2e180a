package service

import (
	"context"
	"errors"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

// Notifier receives state changes after they commit. Implementations must
// not block the caller for long; errors are reported, never retried.
type Notifier interface {
	SlotBooked(ctx context.Context, ev domain.SlotBooked) error
	BookingPaid(ctx context.Context, ev domain.BookingPaid) error
}

// Fanout delivers to every sink, even when an earlier one fails, and returns
// the joined errors.
type Fanout []Notifier

func (f Fanout) SlotBooked(ctx context.Context, ev domain.SlotBooked) error {
	var errs []error
	for _, n := range f {
		if err := n.SlotBooked(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) BookingPaid(ctx context.Context, ev domain.BookingPaid) error {
	var errs []error
	for _, n := range f {
		if err := n.BookingPaid(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
