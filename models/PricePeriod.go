package models

import (
	"time"

	"gorm.io/gorm"
)

// PricePeriod prices one apartment for an inclusive calendar-day range.
// Periods of one apartment may overlap each other and may leave gaps;
// consumers must not assume they partition time.
type PricePeriod struct {
	gorm.Model
	ApartmentID uint      `json:"apartment_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Price       int       `json:"price"` // per covered day, minor currency units
}
