package services

import (
	"booking-clone-server/models"
	"testing"
)

func TestBookingsOverlapRangeInclusiveBounds(t *testing.T) {
	bookings := []models.Booking{{StartDate: day(3), EndDate: day(5)}}

	if !BookingsOverlapRange(bookings, day(5), day(7)) {
		t.Fatal("booking ending on the query start day must conflict")
	}
	if BookingsOverlapRange(bookings, day(6), day(7)) {
		t.Fatal("apartment must be free from the day after checkout")
	}
}

func TestIsApartmentAvailable(t *testing.T) {
	db := newTestDB(t)

	apartment := models.Apartment{Name: "Mid size apartment", CapacityAdults: 2}
	if err := db.Create(&apartment).Error; err != nil {
		t.Fatalf("create apartment: %v", err)
	}

	booking := models.Booking{ApartmentID: apartment.ID, UserID: 1, StartDate: day(1), EndDate: day(2)}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}

	available, err := IsApartmentAvailable(db, apartment.ID, day(1), day(2))
	if err != nil {
		t.Fatalf("availability check: %v", err)
	}
	if available {
		t.Fatal("apartment with an active overlapping booking must be unavailable")
	}

	// Non-overlapping request on the same apartment is fine.
	available, err = IsApartmentAvailable(db, apartment.ID, day(3), day(4))
	if err != nil {
		t.Fatalf("availability check: %v", err)
	}
	if !available {
		t.Fatal("non-overlapping range must be available")
	}

	// Cancellation is a soft delete and frees the dates immediately.
	if err := db.Delete(&booking).Error; err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	available, err = IsApartmentAvailable(db, apartment.ID, day(1), day(2))
	if err != nil {
		t.Fatalf("availability check: %v", err)
	}
	if !available {
		t.Fatal("cancelled bookings must not block availability")
	}
}
