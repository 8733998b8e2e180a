package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

// fakeBooker books each slot once and notifies the hub like the booking
// service does.
type fakeBooker struct {
	mu     sync.Mutex
	slots  *fakeSlots
	hub    *Hub
	booked map[uint]uint
}

func (b *fakeBooker) Book(ctx context.Context, who domain.Identity, slotID uint) (*domain.Booking, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	b.mu.Lock()
	if _, taken := b.booked[slotID]; taken {
		b.mu.Unlock()
		return nil, domain.ErrSlotBooked
	}
	if slotID != 10 && slotID != 11 {
		b.mu.Unlock()
		return nil, domain.ErrSlotNotFound
	}
	b.booked[slotID] = who.UserID
	b.mu.Unlock()

	b.slots.book(1, slotID)
	_ = b.hub.SlotBooked(ctx, domain.SlotBooked{TurfID: 1, SlotID: slotID, UserID: who.UserID})
	return &domain.Booking{ID: 1, UserID: who.UserID, TimeSlotID: slotID, DepositPaid: true}, nil
}

func startServer(t *testing.T, who domain.Identity) (*httptest.Server, *Hub) {
	t.Helper()
	slots := newFakeSlots()
	hub := NewHub(slots)
	booker := &fakeBooker{slots: slots, hub: hub, booked: map[uint]uint{}}
	srv := NewServer(hub, booker)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.Serve(w, r, who)
	}))
	t.Cleanup(ts.Close)
	return ts, hub
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Frame{Event: event, Data: raw}))
}

func receive(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f.Event, f.Data
}

func TestRequestSlotsSubscribes(t *testing.T) {
	ts, hub := startServer(t, domain.Identity{})
	conn := dial(t, ts)

	send(t, conn, EvRequestSlots, map[string]any{"turf_id": 1})
	event, data := receive(t, conn)
	assert.Equal(t, EvUpdateSlots, event)

	var slots []SlotState
	require.NoError(t, json.Unmarshal(data, &slots))
	assert.Len(t, slots, 2)
	assert.Eventually(t, func() bool { return hub.Watchers(1) == 1 }, time.Second, 10*time.Millisecond)
}

func TestRequestSlotsWithoutTurfIsEmpty(t *testing.T) {
	ts, _ := startServer(t, domain.Identity{})
	conn := dial(t, ts)

	send(t, conn, EvRequestSlots, map[string]any{})
	event, data := receive(t, conn)
	assert.Equal(t, EvUpdateSlots, event)
	assert.JSONEq(t, `[]`, string(data))
}

func TestBookSlotNeedsSession(t *testing.T) {
	ts, _ := startServer(t, domain.Identity{})
	conn := dial(t, ts)

	send(t, conn, EvBookSlot, map[string]any{"slot_id": 10})
	event, data := receive(t, conn)
	assert.Equal(t, EvBookingError, event)
	assert.JSONEq(t, `{"msg":"Login required"}`, string(data))
}

func TestBookSlotBroadcastsToWatchers(t *testing.T) {
	ts, hub := startServer(t, domain.Identity{UserID: 5, Email: "alice@example.com"})
	watcher := dial(t, ts)
	booker := dial(t, ts)

	send(t, watcher, EvRequestSlots, map[string]any{"turf_id": "1"})
	event, _ := receive(t, watcher)
	require.Equal(t, EvUpdateSlots, event)
	require.Eventually(t, func() bool { return hub.Watchers(1) == 1 }, time.Second, 10*time.Millisecond)

	send(t, booker, EvBookSlot, map[string]any{"slot_id": 10})
	event, data := receive(t, booker)
	assert.Equal(t, EvBookingSuccess, event)
	assert.JSONEq(t, `{"slot_id":10}`, string(data))

	event, data = receive(t, watcher)
	require.Equal(t, EvUpdateSlots, event)
	var slots []SlotState
	require.NoError(t, json.Unmarshal(data, &slots))
	assert.True(t, slots[0].Booked)

	send(t, booker, EvBookSlot, map[string]any{"slot_id": 10})
	event, data = receive(t, booker)
	assert.Equal(t, EvBookingError, event)
	assert.JSONEq(t, `{"msg":"Slot already booked"}`, string(data))
}

func TestUnknownEvent(t *testing.T) {
	ts, _ := startServer(t, domain.Identity{})
	conn := dial(t, ts)

	send(t, conn, "dance", nil)
	event, _ := receive(t, conn)
	assert.Equal(t, EvError, event)
}
