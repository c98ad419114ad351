package services

import (
	"booking-clone-server/models"
	"sort"
	"time"
)

// SelectBestApartment picks, out of one property's apartments, the single
// closest-fit unit for the party: sufficient capacity, available for the
// stay when dates are given, smallest (capacity_adults, capacity_children)
// first. A guest asking for 2 adults gets the 2-adult apartment, not the
// 6-person one. Returns nil when nothing fits.
//
// Apartments must have their active Bookings preloaded when dates are used.
func SelectBestApartment(apartments []models.Apartment, adults, children int, startDate, endDate *time.Time) *models.Apartment {
	var candidates []models.Apartment
	for _, apartment := range apartments {
		if apartment.CapacityAdults < adults || apartment.CapacityChildren < children {
			continue
		}
		if startDate != nil && endDate != nil &&
			BookingsOverlapRange(apartment.Bookings, *startDate, *endDate) {
			continue
		}
		candidates = append(candidates, apartment)
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CapacityAdults != candidates[j].CapacityAdults {
			return candidates[i].CapacityAdults < candidates[j].CapacityAdults
		}
		return candidates[i].CapacityChildren < candidates[j].CapacityChildren
	})

	return &candidates[0]
}
