// Package events holds the routing keys and payloads exchanged over the
// turf topic exchange.
package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKSlotBooked  = "slot.booked"
	RKBookingPaid = "booking.paid"
)

type SlotBooked struct {
	BookingID uint  `json:"booking_id"`
	SlotID    uint  `json:"slot_id"`
	TurfID    uint  `json:"turf_id"`
	UserID    uint  `json:"user_id"`
	Start     int64 `json:"start"` // unix seconds
	End       int64 `json:"end"`
}

type BookingPaid struct {
	BookingID uint `json:"booking_id"`
	AdminID   uint `json:"admin_id"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
