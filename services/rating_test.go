package services

import (
	"booking-clone-server/models"
	"math"
	"testing"

	"gorm.io/gorm"
)

func ratedBooking(db *gorm.DB, t *testing.T, apartmentID uint, rating int) models.Booking {
	t.Helper()
	booking := models.Booking{ApartmentID: apartmentID, UserID: 1, StartDate: day(0), EndDate: day(1), Rating: &rating}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create rated booking: %v", err)
	}
	return booking
}

func propertyRating(db *gorm.DB, t *testing.T, propertyID uint) *float64 {
	t.Helper()
	var property models.Property
	if err := db.First(&property, propertyID).Error; err != nil {
		t.Fatalf("reload property: %v", err)
	}
	return property.AverageRating
}

func TestUpdatePropertyRatingMeanOverApartments(t *testing.T) {
	db := newTestDB(t)

	property := models.Property{Name: "Seaside hotel"}
	db.Create(&property)
	first := models.Apartment{PropertyID: property.ID, Name: "First"}
	second := models.Apartment{PropertyID: property.ID, Name: "Second"}
	db.Create(&first)
	db.Create(&second)

	ratedBooking(db, t, first.ID, 7)
	ratedBooking(db, t, second.ID, 9)
	trigger := ratedBooking(db, t, second.ID, 7)

	// Unrated bookings are ignored, not counted as zeros.
	db.Create(&models.Booking{ApartmentID: first.ID, UserID: 2, StartDate: day(2), EndDate: day(3)})

	UpdatePropertyRating(db, trigger.ID)

	got := propertyRating(db, t, property.ID)
	if got == nil {
		t.Fatal("average_rating is null, want 23/3")
	}
	if want := 23.0 / 3.0; math.Abs(*got-want) > 1e-9 {
		t.Fatalf("average_rating = %v, want %v", *got, want)
	}

	// Idempotent: recomputing with no new rating changes nothing.
	UpdatePropertyRating(db, trigger.ID)
	if second := propertyRating(db, t, property.ID); second == nil || *second != *got {
		t.Fatalf("recompute changed the value: %v then %v", *got, second)
	}
}

func TestUpdatePropertyRatingKeepsCancelledBookings(t *testing.T) {
	db := newTestDB(t)

	property := models.Property{Name: "City hotel"}
	db.Create(&property)
	apartment := models.Apartment{PropertyID: property.ID, Name: "Only"}
	db.Create(&apartment)

	kept := ratedBooking(db, t, apartment.ID, 10)
	cancelled := ratedBooking(db, t, apartment.ID, 4)
	if err := db.Delete(&cancelled).Error; err != nil {
		t.Fatalf("cancel booking: %v", err)
	}

	UpdatePropertyRating(db, kept.ID)

	got := propertyRating(db, t, property.ID)
	if got == nil || *got != 7 {
		t.Fatalf("average_rating = %v, want 7 (cancelled rating still counts)", got)
	}
}

func TestUpdatePropertyRatingNullWhenNoRatings(t *testing.T) {
	db := newTestDB(t)

	property := models.Property{Name: "New hotel"}
	db.Create(&property)
	apartment := models.Apartment{PropertyID: property.ID, Name: "Only"}
	db.Create(&apartment)

	booking := models.Booking{ApartmentID: apartment.ID, UserID: 1, StartDate: day(0), EndDate: day(1)}
	db.Create(&booking)

	UpdatePropertyRating(db, booking.ID)

	if got := propertyRating(db, t, property.ID); got != nil {
		t.Fatalf("average_rating = %v, want null", *got)
	}
}

func TestUpdatePropertyRatingUnresolvableIsNoOp(t *testing.T) {
	db := newTestDB(t)

	property := models.Property{Name: "Quiet hotel"}
	db.Create(&property)
	apartment := models.Apartment{PropertyID: property.ID, Name: "Only"}
	db.Create(&apartment)
	trigger := ratedBooking(db, t, apartment.ID, 8)
	UpdatePropertyRating(db, trigger.ID)

	// A booking id that does not resolve must not panic or change state.
	UpdatePropertyRating(db, 98765)

	if got := propertyRating(db, t, property.ID); got == nil || *got != 8 {
		t.Fatalf("average_rating = %v, want untouched 8", got)
	}
}
