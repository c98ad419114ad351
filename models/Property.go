package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	OwnerID         uint    `json:"owner_id"`
	Name            string  `json:"name"`
	CityID          uint    `json:"city_id"`
	AddressStreet   string  `json:"address_street"`
	AddressPostcode string  `json:"address_postcode"`
	Lat             float64 `json:"lat"`
	Long            float64 `json:"long"`

	// Rolling mean of booking ratings across all apartments. Maintained by
	// services.UpdatePropertyRating, never computed at read time. Null until
	// the first rating arrives.
	AverageRating *float64 `json:"average_rating"`

	// Ordered photo URLs, first is the cover photo.
	Photos datatypes.JSON `json:"photos" gorm:"type:jsonb"`

	Apartments []Apartment `json:"apartments,omitempty"`
	Facilities []Facility  `json:"facilities,omitempty" gorm:"many2many:facility_property"`
	City       *City       `json:"city,omitempty"`
	Owner      *User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}

// Address renders the street/postcode/city line shown in search results.
// Requires City to be preloaded; degrades to street + postcode otherwise.
func (p *Property) Address() string {
	address := p.AddressStreet + ", " + p.AddressPostcode
	if p.City != nil {
		address += ", " + p.City.Name
	}
	return address
}

// PhotoURLs decodes the Photos JSON column, preserving order.
func (p *Property) PhotoURLs() []string {
	urls := []string{}
	if len(p.Photos) > 0 {
		if err := json.Unmarshal(p.Photos, &urls); err != nil {
			return []string{}
		}
	}
	return urls
}
