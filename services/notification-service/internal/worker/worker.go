package worker

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/pkg/events"
	"github.com/you/turf-booking/services/notification-service/internal/notifier"
)

// errPoison marks a delivery that can never be handled; it is dead-lettered
// instead of requeued.
var errPoison = errors.New("undecodable delivery")

type Worker struct {
	notifier notifier.Notifier
}

func New(n notifier.Notifier) *Worker {
	return &Worker{notifier: n}
}

// Run handles deliveries until ctx ends or the channel closes.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			w.settle(d, w.handle(d.RoutingKey, d.Body))
		}
	}
}

func (w *Worker) settle(d amqp.Delivery, err error) {
	log := logrus.WithFields(logrus.Fields{"key": d.RoutingKey, "message_id": d.MessageId})
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, errPoison):
		log.WithError(err).Error("dead-lettering delivery")
		_ = d.Nack(false, false)
	default:
		log.WithError(err).Warn("notify failed, requeue")
		_ = d.Nack(false, true)
	}
}

func (w *Worker) handle(key string, body []byte) error {
	switch key {
	case events.RKSlotBooked:
		ev, err := events.Decode[events.SlotBooked](body)
		if err != nil {
			return fmt.Errorf("%w: %v", errPoison, err)
		}
		return w.notifier.Notify("Slot booked",
			fmt.Sprintf("Booking %d: user %d booked slot %d on turf %d, %s",
				ev.BookingID, ev.UserID, ev.SlotID, ev.TurfID, notifier.HumanTimeRange(ev.Start, ev.End)))

	case events.RKBookingPaid:
		ev, err := events.Decode[events.BookingPaid](body)
		if err != nil {
			return fmt.Errorf("%w: %v", errPoison, err)
		}
		return w.notifier.Notify("Booking paid",
			fmt.Sprintf("Booking %d marked fully paid by admin %d", ev.BookingID, ev.AdminID))

	default:
		logrus.WithField("key", key).Debug("skip unknown key")
	}
	return nil
}
