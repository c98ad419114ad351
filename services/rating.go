package services

import (
	"booking-clone-server/models"
	"database/sql"
	"log"

	"gorm.io/gorm"
)

// UpdatePropertyRating recomputes the rolling average rating of the property
// a booking belongs to. It is a full recompute over every rated booking of
// the property's apartments, cancelled bookings included (rating history
// survives cancellation), so running it twice without an intervening change
// is a no-op. Failures never propagate: rating maintenance must not block
// the booking mutation that triggered it.
func UpdatePropertyRating(db *gorm.DB, bookingID uint) {
	var booking models.Booking
	if err := db.Unscoped().First(&booking, bookingID).Error; err != nil {
		return
	}

	var apartment models.Apartment
	if err := db.Unscoped().First(&apartment, booking.ApartmentID).Error; err != nil {
		return
	}

	var avg sql.NullFloat64
	err := db.Unscoped().Model(&models.Booking{}).
		Joins("JOIN apartments ON apartments.id = bookings.apartment_id").
		Where("apartments.property_id = ?", apartment.PropertyID).
		Where("bookings.rating IS NOT NULL").
		Select("AVG(bookings.rating)").
		Scan(&avg).Error
	if err != nil {
		log.Println("rating recompute failed for property", apartment.PropertyID, ":", err)
		return
	}

	var value interface{}
	if avg.Valid {
		value = avg.Float64
	}
	if err := db.Model(&models.Property{}).
		Where("id = ?", apartment.PropertyID).
		Update("average_rating", value).Error; err != nil {
		log.Println("rating update failed for property", apartment.PropertyID, ":", err)
	}
}
