package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

// memStore mirrors the store contracts in memory. Reserve holds the lock across
// check and write, which is what the SQL compare-and-set gives us.
type memStore struct {
	mu       sync.Mutex
	users    map[uint]*domain.User
	turfs    map[uint]*domain.Turf
	slots    map[uint]*domain.TimeSlot
	bookings map[uint]*domain.Booking
	seq      uint
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint]*domain.User{},
		turfs:    map[uint]*domain.Turf{},
		slots:    map[uint]*domain.TimeSlot{},
		bookings: map[uint]*domain.Booking{},
	}
}

func (m *memStore) next() uint {
	m.seq++
	return m.seq
}

func (m *memStore) addTurf(name string) *domain.Turf {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &domain.Turf{ID: m.next(), Name: name, Location: "Downtown", PricePerSlot: 1500}
	m.turfs[t.ID] = t
	return t
}

func (m *memStore) addSlot(turfID uint, start time.Time) *domain.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &domain.TimeSlot{ID: m.next(), TurfID: turfID, StartTime: start, EndTime: start.Add(time.Hour)}
	m.slots[s.ID] = s
	return s
}

func (m *memStore) bookingsFor(slotID uint) []domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.TimeSlotID == slotID {
			out = append(out, *b)
		}
	}
	return out
}

func (m *memStore) slot(id uint) domain.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.slots[id]
}

// Reserver

func (m *memStore) Reserve(_ context.Context, slotID, userID uint, at time.Time) (*domain.Booking, *domain.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[slotID]
	if !ok {
		return nil, nil, domain.ErrSlotNotFound
	}
	if s.IsBooked {
		return nil, nil, domain.ErrSlotBooked
	}
	s.IsBooked = true
	b := &domain.Booking{ID: m.next(), UserID: userID, TimeSlotID: slotID, DepositPaid: true, CreatedAt: at}
	m.bookings[b.ID] = b
	cp, slotCopy := *b, *s
	return &cp, &slotCopy, nil
}

// BookingStore

func (m *memStore) ByID(_ context.Context, id uint) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) MarkPaid(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.FullyPaid = true
	return nil
}

func (m *memStore) ByUser(_ context.Context, userID uint) ([]domain.Booking, error) {
	return m.filter(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

func (m *memStore) All(context.Context) ([]domain.Booking, error) {
	return m.filter(func(*domain.Booking) bool { return true }), nil
}

func (m *memStore) Upcoming(_ context.Context, from time.Time) ([]domain.Booking, error) {
	out := m.filter(func(b *domain.Booking) bool { return !m.slots[b.TimeSlotID].StartTime.Before(from) })
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.StartTime.Before(out[j].Slot.StartTime) })
	return out, nil
}

func (m *memStore) filter(keep func(*domain.Booking) bool) []domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Booking{}
	for _, b := range m.bookings {
		if keep(b) {
			cp := *b
			s := *m.slots[b.TimeSlotID]
			cp.Slot = &s
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TurfStore

func (m *memStore) List(context.Context) ([]domain.Turf, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Turf{}
	for _, t := range m.turfs {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) turfByID(id uint) (*domain.Turf, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.turfs[id]
	if !ok {
		return nil, domain.ErrTurfNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) SlotsByTurf(_ context.Context, turfID uint) ([]domain.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.TimeSlot{}
	for _, s := range m.slots {
		if s.TurfID == turfID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *memStore) SlotByID(_ context.Context, id uint) (*domain.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

// turfStore adapts memStore to TurfStore; ByID clashes with BookingStore.
type turfStore struct{ *memStore }

func (t turfStore) ByID(_ context.Context, id uint) (*domain.Turf, error) { return t.turfByID(id) }

// UserStore

type userStore struct{ *memStore }

func (u userStore) Create(_ context.Context, usr *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.users {
		if strings.EqualFold(existing.Email, usr.Email) {
			return domain.ErrEmailTaken
		}
	}
	usr.ID = u.next()
	cp := *usr
	u.users[usr.ID] = &cp
	return nil
}

func (u userStore) ByEmail(_ context.Context, email string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.users {
		if existing.Email == email {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (u userStore) ByID(_ context.Context, id uint) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	usr, ok := u.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *usr
	return &cp, nil
}

func (u userStore) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.users)
}

type recordingNotifier struct {
	mu     sync.Mutex
	booked []domain.SlotBooked
	paid   []domain.BookingPaid
	err    error
}

func (r *recordingNotifier) SlotBooked(_ context.Context, ev domain.SlotBooked) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.booked = append(r.booked, ev)
	return r.err
}

func (r *recordingNotifier) BookingPaid(_ context.Context, ev domain.BookingPaid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paid = append(r.paid, ev)
	return r.err
}

func (r *recordingNotifier) bookedEvents() []domain.SlotBooked {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SlotBooked(nil), r.booked...)
}
