package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

var day = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

type fakeTurfs struct {
	turfs []domain.Turf
	slots []domain.TimeSlot
}

func newFakeTurfs() *fakeTurfs {
	return &fakeTurfs{
		turfs: []domain.Turf{
			{ID: 1, Name: "Green Field", Location: "Downtown", PricePerSlot: 1500},
			{ID: 2, Name: "Blue Arena", Location: "Uptown", PricePerSlot: 1800},
		},
		slots: []domain.TimeSlot{
			{ID: 10, TurfID: 1, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)},
			{ID: 11, TurfID: 1, StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour)},
		},
	}
}

func (f *fakeTurfs) List(context.Context) ([]domain.Turf, error) { return f.turfs, nil }

func (f *fakeTurfs) Get(_ context.Context, id uint) (*domain.Turf, error) {
	for i := range f.turfs {
		if f.turfs[i].ID == id {
			return &f.turfs[i], nil
		}
	}
	return nil, domain.ErrTurfNotFound
}

func (f *fakeTurfs) Slots(_ context.Context, turfID uint) ([]domain.TimeSlot, error) {
	out := []domain.TimeSlot{}
	for _, s := range f.slots {
		if s.TurfID == turfID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeTurfs) Slot(_ context.Context, id uint) (*domain.TimeSlot, error) {
	for i := range f.slots {
		if f.slots[i].ID == id {
			return &f.slots[i], nil
		}
	}
	return nil, domain.ErrSlotNotFound
}

// fakeBookings follows the booking service's guards over an in-memory list.
type fakeBookings struct {
	mu       sync.Mutex
	turfs    *fakeTurfs
	bookings []domain.Booking
	err      error
}

func (f *fakeBookings) Book(ctx context.Context, who domain.Identity, slotID uint) (*domain.Booking, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if f.err != nil {
		return nil, f.err
	}
	slot, err := f.turfs.Slot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if slot.IsBooked {
		return nil, domain.ErrSlotBooked
	}
	slot.IsBooked = true
	b := domain.Booking{ID: uint(len(f.bookings) + 1), UserID: who.UserID, TimeSlotID: slotID, DepositPaid: true}
	f.bookings = append(f.bookings, b)
	return &b, nil
}

func (f *fakeBookings) MarkPaid(_ context.Context, who domain.Identity, id uint) error {
	if !who.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !who.IsAdmin {
		return domain.ErrAdminOnly
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].FullyPaid = true
			return nil
		}
	}
	return domain.ErrBookingNotFound
}

func (f *fakeBookings) UserBookings(_ context.Context, who domain.Identity) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Booking{}
	for _, b := range f.bookings {
		if b.UserID == who.UserID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) AllBookings(_ context.Context, who domain.Identity) ([]domain.Booking, error) {
	if !who.IsAdmin {
		return nil, domain.ErrAdminOnly
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Booking{}, f.bookings...), nil
}

func (f *fakeBookings) Upcoming(ctx context.Context, who domain.Identity) ([]domain.Booking, error) {
	return f.AllBookings(ctx, who)
}

type fakeAccounts struct {
	users     []domain.User
	passwords map[string]string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		users: []domain.User{
			{ID: 1, Email: "admin@example.com", IsAdmin: true},
			{ID: 2, Email: "user@example.com"},
		},
		passwords: map[string]string{"admin@example.com": "admin123", "user@example.com": "user123"},
	}
}

func (f *fakeAccounts) Register(_ context.Context, email, password string) (*domain.User, error) {
	if _, ok := f.passwords[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	if len(password) < 6 {
		return nil, domain.ErrInvalid
	}
	u := domain.User{ID: uint(len(f.users) + 1), Email: email}
	f.users = append(f.users, u)
	f.passwords[email] = password
	return &u, nil
}

func (f *fakeAccounts) Login(_ context.Context, email, password string) (*domain.User, error) {
	if pw, ok := f.passwords[email]; !ok || pw != password {
		return nil, domain.ErrInvalidCredentials
	}
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (f *fakeAccounts) User(_ context.Context, id uint) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}
