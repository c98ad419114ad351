package models

import "gorm.io/gorm"

type ApartmentType struct {
	gorm.Model
	Name string `json:"name"`
}

type Apartment struct {
	gorm.Model
	PropertyID       uint   `json:"property_id"`
	ApartmentTypeID  *uint  `json:"apartment_type_id"`
	Name             string `json:"name"`
	CapacityAdults   int    `json:"capacity_adults"`
	CapacityChildren int    `json:"capacity_children"`
	Size             *int   `json:"size"`
	Bathrooms        int    `json:"bathrooms"`

	WheelchairAccess bool `json:"wheelchair_access"`
	PetsAllowed      bool `json:"pets_allowed"`
	SmokingAllowed   bool `json:"smoking_allowed"`
	FreeCancellation bool `json:"free_cancellation"`
	AllDayAccess     bool `json:"all_day_access"`

	Property      *Property      `json:"property,omitempty"`
	ApartmentType *ApartmentType `json:"apartment_type,omitempty"`
	Rooms         []Room         `json:"rooms,omitempty"`
	Prices        []PricePeriod  `json:"prices,omitempty"`
	Bookings      []Booking      `json:"bookings,omitempty"`
	Facilities    []Facility     `json:"facilities,omitempty" gorm:"many2many:apartment_facility"`
}

// Beds flattens the apartment's rooms into a single bed list. Requires
// Rooms.Beds to be preloaded.
func (a *Apartment) Beds() []Bed {
	var beds []Bed
	for _, room := range a.Rooms {
		beds = append(beds, room.Beds...)
	}
	return beds
}
