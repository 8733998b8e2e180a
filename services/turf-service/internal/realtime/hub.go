package realtime

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

type SlotLister interface {
	Slots(ctx context.Context, turfID uint) ([]domain.TimeSlot, error)
}

// Hub tracks which connections watch which turf and pushes slot lists to
// them. Each client watches at most one turf.
type Hub struct {
	slots SlotLister

	mu       sync.RWMutex
	watchers map[uint]map[*Client]struct{}
	watching map[*Client]uint
}

func NewHub(slots SlotLister) *Hub {
	return &Hub{
		slots:    slots,
		watchers: map[uint]map[*Client]struct{}{},
		watching: map[*Client]uint{},
	}
}

func (h *Hub) Watch(c *Client, turfID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unwatchLocked(c)
	if turfID == 0 {
		return
	}
	set, ok := h.watchers[turfID]
	if !ok {
		set = map[*Client]struct{}{}
		h.watchers[turfID] = set
	}
	set[c] = struct{}{}
	h.watching[c] = turfID
}

func (h *Hub) Unwatch(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unwatchLocked(c)
}

func (h *Hub) unwatchLocked(c *Client) {
	turfID, ok := h.watching[c]
	if !ok {
		return
	}
	delete(h.watching, c)
	if set := h.watchers[turfID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.watchers, turfID)
		}
	}
}

func (h *Hub) Watchers(turfID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[turfID])
}

// Broadcast queues frame for every watcher of turfID without blocking.
// Clients whose queue is full are disconnected.
func (h *Hub) Broadcast(turfID uint, frame []byte) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.watchers[turfID]))
	for c := range h.watchers[turfID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if c.enqueue(frame) {
			sent++
			continue
		}
		logrus.WithField("client", c.id).Warn("realtime client too slow, dropping")
		h.Unwatch(c)
		c.Close()
	}
	return sent
}

// PushSlots sends the current slot list of turfID to its watchers.
func (h *Hub) PushSlots(ctx context.Context, turfID uint) error {
	if h.Watchers(turfID) == 0 {
		return nil
	}
	slots, err := h.slots.Slots(ctx, turfID)
	if err != nil {
		return err
	}
	frame, err := encode(EvUpdateSlots, slotStates(slots))
	if err != nil {
		return err
	}
	h.Broadcast(turfID, frame)
	return nil
}

func (h *Hub) SlotBooked(ctx context.Context, ev domain.SlotBooked) error {
	return h.PushSlots(ctx, ev.TurfID)
}

func (h *Hub) BookingPaid(context.Context, domain.BookingPaid) error { return nil }
