// Package seed loads demo accounts, turfs and slots into an empty database.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin123"
	UserEmail     = "user@example.com"
	UserPassword  = "user123"

	slotsPerTurf = 6
)

type Accounts interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	CreateAdmin(ctx context.Context, email, password string) (*domain.User, error)
}

type Turfs interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *domain.Turf) error
	CreateSlot(ctx context.Context, s *domain.TimeSlot) error
}

type Booker interface {
	Book(ctx context.Context, who domain.Identity, slotID uint) (*domain.Booking, error)
}

type Seeder struct {
	accounts Accounts
	turfs    Turfs
	booker   Booker
	now      func() time.Time
}

func New(a Accounts, t Turfs, b Booker) *Seeder {
	return &Seeder{accounts: a, turfs: t, booker: b, now: time.Now}
}

// Run seeds once: when any turf exists it does nothing and reports false.
// The demo user's first slot is booked through the normal booking path.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	n, err := s.turfs.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		logrus.WithField("turfs", n).Info("seed skipped, data present")
		return false, nil
	}

	if _, err := s.accounts.CreateAdmin(ctx, AdminEmail, AdminPassword); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	user, err := s.accounts.Register(ctx, UserEmail, UserPassword)
	if err != nil {
		return false, fmt.Errorf("seed user: %w", err)
	}

	turfs := []domain.Turf{
		{Name: "Green Field", Location: "Downtown", PricePerSlot: 1500},
		{Name: "Blue Arena", Location: "Uptown", PricePerSlot: 1800},
	}
	first := s.now().UTC().Truncate(time.Hour).Add(time.Hour)
	var firstSlot uint
	for i := range turfs {
		if err := s.turfs.Create(ctx, &turfs[i]); err != nil {
			return false, fmt.Errorf("seed turf %q: %w", turfs[i].Name, err)
		}
		for h := 0; h < slotsPerTurf; h++ {
			start := first.Add(time.Duration(h) * time.Hour)
			slot := domain.TimeSlot{TurfID: turfs[i].ID, StartTime: start, EndTime: start.Add(time.Hour)}
			if err := s.turfs.CreateSlot(ctx, &slot); err != nil {
				return false, fmt.Errorf("seed slot: %w", err)
			}
			if firstSlot == 0 {
				firstSlot = slot.ID
			}
		}
	}

	who := domain.Identity{UserID: user.ID, Email: user.Email}
	if _, err := s.booker.Book(ctx, who, firstSlot); err != nil {
		return false, fmt.Errorf("seed booking: %w", err)
	}
	logrus.WithFields(logrus.Fields{"turfs": len(turfs), "slots": len(turfs) * slotsPerTurf}).Info("seeded demo data")
	return true, nil
}
