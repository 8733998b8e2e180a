package domain

import "time"

type Booking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TimeSlotID  uint      `gorm:"column:timeslot_id;uniqueIndex;not null" json:"timeslot_id"`
	Slot        *TimeSlot `gorm:"foreignKey:TimeSlotID" json:"slot,omitempty"`
	DepositPaid bool      `gorm:"default:false;not null" json:"deposit_paid"`
	FullyPaid   bool      `gorm:"default:false;not null" json:"fully_paid"`
	CreatedAt   time.Time `json:"created_at"`
}

// SlotBooked is emitted after a Booking Transition commits.
type SlotBooked struct {
	BookingID uint      `json:"booking_id"`
	SlotID    uint      `json:"slot_id"`
	TurfID    uint      `json:"turf_id"`
	UserID    uint      `json:"user_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

type BookingPaid struct {
	BookingID uint `json:"booking_id"`
	AdminID   uint `json:"admin_id"`
}
