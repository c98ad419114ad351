package models

import "gorm.io/gorm"

type FacilityCategory struct {
	gorm.Model
	Name       string     `json:"name"`
	Facilities []Facility `json:"facilities,omitempty" gorm:"foreignKey:CategoryID"`
}

// Facility attaches both to apartments (amenities of the unit) and to
// properties (amenities of the building); the two relations are
// independent many-to-many sets.
type Facility struct {
	gorm.Model
	CategoryID uint              `json:"category_id"`
	Name       string            `json:"name"`
	Category   *FacilityCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Properties []Property        `json:"properties,omitempty" gorm:"many2many:facility_property"`
	Apartments []Apartment       `json:"apartments,omitempty" gorm:"many2many:apartment_facility"`
}
