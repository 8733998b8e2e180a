package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

type TurfRepo struct{ db *gorm.DB }

func NewTurfRepo(db *gorm.DB) *TurfRepo {
	return &TurfRepo{db: db}
}

func (r *TurfRepo) Create(ctx context.Context, t *domain.Turf) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return domain.Unavailable("create turf", err)
	}
	return nil
}

func (r *TurfRepo) List(ctx context.Context) ([]domain.Turf, error) {
	out := []domain.Turf{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, domain.Unavailable("list turfs", err)
	}
	return out, nil
}

func (r *TurfRepo) ByID(ctx context.Context, id uint) (*domain.Turf, error) {
	var t domain.Turf
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrTurfNotFound, "turf by id")
	}
	return &t, nil
}

func (r *TurfRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Turf{}).Count(&n).Error; err != nil {
		return 0, domain.Unavailable("count turfs", err)
	}
	return n, nil
}

// CreateSlot stores a free slot. Slots are only created by seeding and
// administrative tooling.
func (r *TurfRepo) CreateSlot(ctx context.Context, s *domain.TimeSlot) error {
	if !s.EndTime.After(s.StartTime) {
		return fmt.Errorf("%w: slot end must be after start", domain.ErrInvalid)
	}
	s.IsBooked = false
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return domain.Unavailable("create slot", err)
	}
	return nil
}

// SlotsByTurf lists a turf's slots by start time. An unknown turf yields an
// empty list.
func (r *TurfRepo) SlotsByTurf(ctx context.Context, turfID uint) ([]domain.TimeSlot, error) {
	out := []domain.TimeSlot{}
	err := r.db.WithContext(ctx).
		Where("turf_id = ?", turfID).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, domain.Unavailable("list slots", err)
	}
	return out, nil
}

func (r *TurfRepo) SlotByID(ctx context.Context, id uint) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrSlotNotFound, "slot by id")
	}
	return &s, nil
}
