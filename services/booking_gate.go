package services

import (
	"booking-clone-server/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// BookingValidationKind identifies which booking constraint was violated so
// the client can render an actionable message.
type BookingValidationKind string

const (
	ApartmentNotFound    BookingValidationKind = "APARTMENT_NOT_FOUND"
	CapacityExceeded     BookingValidationKind = "CAPACITY_EXCEEDED"
	DateRangeUnavailable BookingValidationKind = "DATE_RANGE_UNAVAILABLE"
)

type BookingValidationError struct {
	Kind    BookingValidationKind
	Message string
}

func (e *BookingValidationError) Error() string {
	return e.Message
}

// ValidateBookingRequest is the pre-commit gate for booking creation: the
// apartment must exist, fit the party and be free of active bookings for the
// stay. Callers are expected to run it and the insert inside one transaction
// so two overlapping requests cannot both pass.
func ValidateBookingRequest(db *gorm.DB, apartmentID uint, startDate, endDate time.Time, adults, children int) error {
	var apartment models.Apartment
	if err := db.First(&apartment, apartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &BookingValidationError{
				Kind:    ApartmentNotFound,
				Message: "Sorry, this apartment is not found",
			}
		}
		return err
	}

	if apartment.CapacityAdults < adults || apartment.CapacityChildren < children {
		return &BookingValidationError{
			Kind:    CapacityExceeded,
			Message: "Sorry, this apartment does not fit all your guests",
		}
	}

	available, err := IsApartmentAvailable(db, apartmentID, startDate, endDate)
	if err != nil {
		return err
	}
	if !available {
		return &BookingValidationError{
			Kind:    DateRangeUnavailable,
			Message: "Sorry, this apartment is not available for those dates",
		}
	}

	return nil
}
