package domain

import "time"

type Turf struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:128;not null" json:"name"`
	Location     string `gorm:"size:128" json:"location"`
	PricePerSlot int64  `gorm:"not null;default:0" json:"price_per_slot"`
}

// TimeSlot is a bookable window on a turf. IsBooked flips false -> true at
// most once, together with the insert of its Booking.
type TimeSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TurfID    uint      `gorm:"index;not null" json:"turf_id"`
	Turf      *Turf     `gorm:"foreignKey:TurfID;constraint:OnDelete:CASCADE" json:"turf,omitempty"`
	StartTime time.Time `gorm:"index;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null;check:chk_time_slots_window,end_time > start_time" json:"end_time"`
	IsBooked  bool      `gorm:"default:false;not null" json:"is_booked"`
}
