package services

import (
	"booking-clone-server/models"
	"time"

	"gorm.io/gorm"
)

// CalculateApartmentPriceForDates walks every day of the inclusive range
// [startDate, endDate] and adds the price of each period covering that day.
// A day covered by two overlapping periods is charged both prices, and a day
// covered by none contributes 0. Callers must pass both bounds with
// startDate <= endDate; absent dates are defaulted upstream.
func CalculateApartmentPriceForDates(prices []models.PricePeriod, startDate, endDate time.Time) int {
	cost := 0

	day := DateOnly(startDate)
	last := DateOnly(endDate)
	for !day.After(last) {
		for _, price := range prices {
			if RangesOverlap(day, day, DateOnly(price.StartDate), DateOnly(price.EndDate)) {
				cost += price.Price
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return cost
}

// ComputeApartmentPrice loads an apartment's price periods and prices the
// given stay. Returns gorm.ErrRecordNotFound when the apartment id does not
// resolve.
func ComputeApartmentPrice(db *gorm.DB, apartmentID uint, startDate, endDate time.Time) (int, error) {
	var apartment models.Apartment
	if err := db.Preload("Prices").First(&apartment, apartmentID).Error; err != nil {
		return 0, err
	}
	return CalculateApartmentPriceForDates(apartment.Prices, startDate, endDate), nil
}

// DefaultStayRange is the tomorrow / day-after-tomorrow window used to quote
// a price when a search carries no explicit dates.
func DefaultStayRange() (time.Time, time.Time) {
	tomorrow := DateOnly(time.Now().AddDate(0, 0, 1))
	return tomorrow, tomorrow.AddDate(0, 0, 1)
}
