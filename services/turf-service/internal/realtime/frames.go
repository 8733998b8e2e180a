package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

const (
	EvRequestSlots   = "request_slots"
	EvBookSlot       = "book_slot"
	EvUpdateSlots    = "update_slots"
	EvBookingSuccess = "booking_success"
	EvBookingError   = "booking_error"
	EvError          = "error"
)

type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type SlotState struct {
	ID     uint   `json:"id"`
	Start  string `json:"start"`
	Booked bool   `json:"booked"`
}

type requestSlots struct {
	TurfID ID `json:"turf_id"`
}

type bookSlot struct {
	SlotID ID `json:"slot_id"`
}

type bookingSuccess struct {
	SlotID uint `json:"slot_id"`
}

type errorMsg struct {
	Msg string `json:"msg"`
}

// ID accepts 7, "7" and null; browsers send either.
type ID uint

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = ID(v)
	return nil
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

func slotStates(slots []domain.TimeSlot) []SlotState {
	out := make([]SlotState, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotState{ID: s.ID, Start: s.StartTime.UTC().Format(time.RFC3339), Booked: s.IsBooked})
	}
	return out
}
