package services

import (
	"booking-clone-server/models"
	"time"

	"gorm.io/gorm"
)

// BookingsOverlapRange reports whether any of the given bookings overlaps
// the requested stay. The slice is expected to hold active bookings only
// (GORM's default scope already excludes soft-deleted rows on preload).
func BookingsOverlapRange(bookings []models.Booking, startDate, endDate time.Time) bool {
	for _, booking := range bookings {
		if RangesOverlap(DateOnly(startDate), DateOnly(endDate), DateOnly(booking.StartDate), DateOnly(booking.EndDate)) {
			return true
		}
	}
	return false
}

// IsApartmentAvailable checks the store for an active booking overlapping
// [startDate, endDate]. Cancelled bookings never block a new stay.
func IsApartmentAvailable(db *gorm.DB, apartmentID uint, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("apartment_id = ?", apartmentID).
		Where("start_date <= ? AND end_date >= ?", DateOnly(endDate), DateOnly(startDate)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
