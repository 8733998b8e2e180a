package service

import (
	"context"
	"errors"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

type TurfStore interface {
	List(ctx context.Context) ([]domain.Turf, error)
	ByID(ctx context.Context, id uint) (*domain.Turf, error)
	SlotsByTurf(ctx context.Context, turfID uint) ([]domain.TimeSlot, error)
	SlotByID(ctx context.Context, id uint) (*domain.TimeSlot, error)
}

type TurfSvc struct {
	repo TurfStore
}

func NewTurfSvc(r TurfStore) *TurfSvc {
	return &TurfSvc{repo: r}
}

func (s *TurfSvc) List(ctx context.Context) ([]domain.Turf, error) {
	return s.repo.List(ctx)
}

func (s *TurfSvc) Get(ctx context.Context, id uint) (*domain.Turf, error) {
	return s.repo.ByID(ctx, id)
}

// Slots is the availability query: ordered by start time, empty for a zero or
// unknown turf id.
func (s *TurfSvc) Slots(ctx context.Context, turfID uint) ([]domain.TimeSlot, error) {
	if turfID == 0 {
		return []domain.TimeSlot{}, nil
	}
	slots, err := s.repo.SlotsByTurf(ctx, turfID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.TimeSlot{}, nil
	}
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	return slots, nil
}

func (s *TurfSvc) Slot(ctx context.Context, id uint) (*domain.TimeSlot, error) {
	return s.repo.SlotByID(ctx, id)
}
