package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) ByID(ctx context.Context, id uint) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound, "booking by id")
	}
	return &b, nil
}

// MarkPaid sets fully_paid and touches nothing else. Postgres counts matched
// rows, so repeating it on a paid booking still affects one row.
func (r *BookingRepo) MarkPaid(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("fully_paid", true)
	if res.Error != nil {
		return domain.Unavailable("mark paid", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepo) ByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.db.WithContext(ctx).
		Preload("Slot.Turf").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, domain.Unavailable("list user bookings", err)
	}
	return out, nil
}

func (r *BookingRepo) All(ctx context.Context) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.db.WithContext(ctx).
		Preload("Slot.Turf").
		Preload("User").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, domain.Unavailable("list bookings", err)
	}
	return out, nil
}

// Upcoming returns bookings whose slot starts at or after from, ordered by
// slot start.
func (r *BookingRepo) Upcoming(ctx context.Context, from time.Time) ([]domain.Booking, error) {
	var slots []domain.TimeSlot
	err := r.db.WithContext(ctx).
		Preload("Turf").
		Where("start_time >= ? AND is_booked = ?", from, true).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, domain.Unavailable("list upcoming slots", err)
	}
	out := []domain.Booking{}
	if len(slots) == 0 {
		return out, nil
	}

	ids := make([]uint, len(slots))
	for i := range slots {
		ids[i] = slots[i].ID
	}
	var bookings []domain.Booking
	if err := r.db.WithContext(ctx).Preload("User").Where("timeslot_id IN ?", ids).Find(&bookings).Error; err != nil {
		return nil, domain.Unavailable("list upcoming bookings", err)
	}
	bySlot := make(map[uint]domain.Booking, len(bookings))
	for _, b := range bookings {
		bySlot[b.TimeSlotID] = b
	}
	for i := range slots {
		b, ok := bySlot[slots[i].ID]
		if !ok {
			continue
		}
		b.Slot = &slots[i]
		out = append(out, b)
	}
	return out, nil
}
