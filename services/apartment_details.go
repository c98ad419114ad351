package services

import (
	"booking-clone-server/models"

	"gorm.io/gorm"
)

type ApartmentDetails struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Type      *string `json:"type"`
	Size      *int    `json:"size"`
	BedsList  string  `json:"beds_list"`
	Bathrooms int     `json:"bathrooms"`

	// Category name -> facility names, for the detail screen's grouped list.
	FacilityCategories map[string][]string `json:"facility_categories"`
}

// GetApartmentDetails loads one apartment with its beds and facilities and
// groups the facilities by category name. Returns gorm.ErrRecordNotFound
// when the id does not resolve.
func GetApartmentDetails(db *gorm.DB, apartmentID uint) (*ApartmentDetails, error) {
	var apartment models.Apartment
	err := db.
		Preload("ApartmentType").
		Preload("Rooms.Beds.BedType").
		Preload("Facilities.Category").
		First(&apartment, apartmentID).Error
	if err != nil {
		return nil, err
	}

	categories := map[string][]string{}
	for _, facility := range apartment.Facilities {
		name := ""
		if facility.Category != nil {
			name = facility.Category.Name
		}
		categories[name] = append(categories[name], facility.Name)
	}

	details := &ApartmentDetails{
		ID:                 apartment.ID,
		Name:               apartment.Name,
		Size:               apartment.Size,
		BedsList:           BedsList(apartment.Beds()),
		Bathrooms:          apartment.Bathrooms,
		FacilityCategories: categories,
	}
	if apartment.ApartmentType != nil {
		details.Type = &apartment.ApartmentType.Name
	}
	return details, nil
}
