package events

import (
	"context"
	"time"

	"github.com/you/turf-booking/pkg/events"
	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

const publishTimeout = 3 * time.Second

type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Publisher forwards committed state changes to the message broker.
type Publisher struct {
	pub     JSONPublisher
	timeout time.Duration
}

func NewPublisher(pub JSONPublisher) *Publisher {
	return &Publisher{pub: pub, timeout: publishTimeout}
}

func (p *Publisher) SlotBooked(ctx context.Context, ev domain.SlotBooked) error {
	return p.publish(ctx, events.RKSlotBooked, events.SlotBooked{
		BookingID: ev.BookingID,
		SlotID:    ev.SlotID,
		TurfID:    ev.TurfID,
		UserID:    ev.UserID,
		Start:     ev.Start.Unix(),
		End:       ev.End.Unix(),
	})
}

func (p *Publisher) BookingPaid(ctx context.Context, ev domain.BookingPaid) error {
	return p.publish(ctx, events.RKBookingPaid, events.BookingPaid{
		BookingID: ev.BookingID,
		AdminID:   ev.AdminID,
	})
}

func (p *Publisher) publish(ctx context.Context, key string, v any) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	return p.pub.PublishJSON(ctx, key, v)
}
