package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking is soft-deletable: cancellation sets DeletedAt but keeps the
// record (and its frozen price and rating) queryable for history.
// Only non-cancelled bookings block availability.
type Booking struct {
	gorm.Model
	ApartmentID    uint      `json:"apartment_id"`
	UserID         uint      `json:"user_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	GuestsAdults   int       `json:"guests_adults"`
	GuestsChildren int       `json:"guests_children"`

	// Computed once at creation from the apartment's price periods, then frozen.
	TotalPrice int `json:"total_price"`

	Rating        *int   `json:"rating"` // 1-10, set post-stay by the guest
	ReviewComment string `json:"review_comment"`

	Apartment *Apartment `json:"apartment,omitempty"`
	User      *User      `json:"user,omitempty"`
}
