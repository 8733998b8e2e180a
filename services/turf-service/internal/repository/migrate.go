package repository

import (
	"gorm.io/gorm"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Turf{}, &domain.TimeSlot{}, &domain.Booking{})
}
