package services

import (
	"booking-clone-server/models"
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// SearchPageSize is the fixed page size of property search results.
const SearchPageSize = 10

// SearchFilters carries the recognized search dimensions. Zero/nil fields
// leave their dimension inactive; there are no invalid combinations.
// Adults+Children must both be present to activate capacity selection, and
// StartDate+EndDate only matter when capacity selection is active (dates
// alone do not filter).
type SearchFilters struct {
	CityID      uint
	CountryID   uint
	GeoobjectID uint

	Adults   *int
	Children *int

	StartDate *time.Time
	EndDate   *time.Time

	FacilityIDs []uint

	PriceFrom *int
	PriceTo   *int

	WheelchairAccess *bool
	PetsAllowed      *bool
	SmokingAllowed   *bool
	FreeCancellation *bool
	AllDayAccess     *bool

	Page int

	// BasePath and Query feed pagination link building; both optional.
	BasePath string
	Query    url.Values
}

type ApartmentSummary struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Type     *string `json:"type"`
	Size     *int    `json:"size"`
	BedsList string  `json:"beds_list"`

	Bathrooms int `json:"bathrooms"`
	Price     int `json:"price"`

	WheelchairAccess bool `json:"wheelchair_access"`
	PetsAllowed      bool `json:"pets_allowed"`
	SmokingAllowed   bool `json:"smoking_allowed"`
	FreeCancellation bool `json:"free_cancellation"`
	AllDayAccess     bool `json:"all_day_access"`
}

type PropertyResult struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Address       string             `json:"address"`
	Lat           float64            `json:"lat"`
	Long          float64            `json:"long"`
	Apartments    []ApartmentSummary `json:"apartments"`
	Photos        []string           `json:"photos"`
	AverageRating *float64           `json:"avg_rating"`
}

type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

type PropertyPage struct {
	Data  []PropertyResult `json:"data"`
	Links PageLinks        `json:"links"`
	Meta  PageMeta         `json:"meta"`
}

type FacilityCount struct {
	Name  string
	Count int
}

// FacilityCounts marshals as a JSON object whose keys keep the
// descending-by-count order the engine produced.
type FacilityCounts []FacilityCount

func (fc FacilityCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range fc {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type SearchResult struct {
	Properties PropertyPage   `json:"properties"`
	Facilities FacilityCounts `json:"facilities"`
}

// SearchProperties runs the property search: store-level filters first
// (city, country, facilities, price band), then the in-process passes the
// store cannot express (geo radius, amenity narrowing, closest-fit capacity
// selection with availability), then rating ordering, facility-count
// aggregation over the filtered set and a fixed page of 10.
func SearchProperties(db *gorm.DB, filters SearchFilters) (*SearchResult, error) {
	q := db.Model(&models.Property{}).
		Preload("City").
		Preload("Apartments.ApartmentType").
		Preload("Apartments.Rooms.Beds.BedType").
		Preload("Apartments.Prices").
		Preload("Apartments.Bookings").
		Preload("Facilities")

	if filters.CityID != 0 {
		q = q.Where("city_id = ?", filters.CityID)
	}
	if filters.CountryID != 0 {
		q = q.Where("city_id IN (?)",
			db.Model(&models.City{}).Select("id").Where("country_id = ?", filters.CountryID))
	}
	if len(filters.FacilityIDs) > 0 {
		// ANY semantics: at least one of the requested facilities.
		q = q.Where("EXISTS (SELECT 1 FROM facility_property fp WHERE fp.property_id = properties.id AND fp.facility_id IN ?)",
			filters.FacilityIDs)
	}
	if filters.PriceFrom != nil {
		q = q.Where("EXISTS (SELECT 1 FROM price_periods pp JOIN apartments a ON a.id = pp.apartment_id WHERE a.property_id = properties.id AND pp.deleted_at IS NULL AND pp.price >= ?)",
			*filters.PriceFrom)
	}
	if filters.PriceTo != nil {
		q = q.Where("EXISTS (SELECT 1 FROM price_periods pp JOIN apartments a ON a.id = pp.apartment_id WHERE a.property_id = properties.id AND pp.deleted_at IS NULL AND pp.price <= ?)",
			*filters.PriceTo)
	}

	// Properties without ratings sort after any rated property.
	q = q.Order("average_rating IS NULL, average_rating DESC, id")

	var candidates []models.Property
	if err := q.Find(&candidates).Error; err != nil {
		return nil, err
	}

	// An unresolvable geoobject id degrades to "no geographic filter".
	var geoobject *models.Geoobject
	if filters.GeoobjectID != 0 {
		var geo models.Geoobject
		err := db.First(&geo, filters.GeoobjectID).Error
		if err == nil {
			geoobject = &geo
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	capacityActive := filters.Adults != nil && filters.Children != nil
	datesActive := filters.StartDate != nil && filters.EndDate != nil

	filtered := make([]models.Property, 0, len(candidates))
	for _, property := range candidates {
		if geoobject != nil &&
			!IsWithinRadius(property.Lat, property.Long, geoobject.Lat, geoobject.Long, GeoobjectRadiusKm) {
			continue
		}

		var amenitiesActive bool
		property.Apartments, amenitiesActive = filterApartmentsByAmenities(property.Apartments, filters)
		if amenitiesActive && len(property.Apartments) == 0 {
			continue
		}

		if capacityActive {
			var start, end *time.Time
			if datesActive {
				start, end = filters.StartDate, filters.EndDate
			}
			best := SelectBestApartment(property.Apartments, *filters.Adults, *filters.Children, start, end)
			if best == nil {
				continue
			}
			property.Apartments = []models.Apartment{*best}
		}

		filtered = append(filtered, property)
	}

	facilities, err := countFacilities(db, filtered)
	if err != nil {
		return nil, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	total := int64(len(filtered))
	lastPage := (len(filtered) + SearchPageSize - 1) / SearchPageSize
	if lastPage < 1 {
		lastPage = 1
	}

	start := (page - 1) * SearchPageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + SearchPageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	quoteStart, quoteEnd := DefaultStayRange()
	if datesActive {
		quoteStart, quoteEnd = *filters.StartDate, *filters.EndDate
	}

	results := make([]PropertyResult, 0, end-start)
	for _, property := range filtered[start:end] {
		results = append(results, buildPropertyResult(property, quoteStart, quoteEnd))
	}

	return &SearchResult{
		Properties: PropertyPage{
			Data:  results,
			Links: buildPageLinks(filters, page, lastPage),
			Meta: PageMeta{
				CurrentPage: page,
				LastPage:    lastPage,
				PerPage:     SearchPageSize,
				Total:       total,
			},
		},
		Facilities: facilities,
	}, nil
}

// filterApartmentsByAmenities narrows a property's apartments to those
// matching every requested amenity flag exactly; the second return value
// reports whether any amenity filter was active at all.
func filterApartmentsByAmenities(apartments []models.Apartment, filters SearchFilters) ([]models.Apartment, bool) {
	checks := []struct {
		want *bool
		get  func(models.Apartment) bool
	}{
		{filters.WheelchairAccess, func(a models.Apartment) bool { return a.WheelchairAccess }},
		{filters.PetsAllowed, func(a models.Apartment) bool { return a.PetsAllowed }},
		{filters.SmokingAllowed, func(a models.Apartment) bool { return a.SmokingAllowed }},
		{filters.FreeCancellation, func(a models.Apartment) bool { return a.FreeCancellation }},
		{filters.AllDayAccess, func(a models.Apartment) bool { return a.AllDayAccess }},
	}

	active := false
	for _, check := range checks {
		if check.want != nil {
			active = true
			break
		}
	}
	if !active {
		return apartments, false
	}

	kept := make([]models.Apartment, 0, len(apartments))
	for _, apartment := range apartments {
		matches := true
		for _, check := range checks {
			if check.want != nil && check.get(apartment) != *check.want {
				matches = false
				break
			}
		}
		if matches {
			kept = append(kept, apartment)
		}
	}
	return kept, true
}

// countFacilities aggregates, over the filtered property set, how many
// properties carry each property-level facility. Zero counts are omitted
// and results come back ordered by count descending.
func countFacilities(db *gorm.DB, properties []models.Property) (FacilityCounts, error) {
	if len(properties) == 0 {
		return FacilityCounts{}, nil
	}

	ids := make([]uint, 0, len(properties))
	for _, property := range properties {
		ids = append(ids, property.ID)
	}

	var rows []struct {
		Name  string
		Count int
	}
	err := db.Model(&models.Facility{}).
		Select("facilities.name AS name, COUNT(DISTINCT fp.property_id) AS count").
		Joins("JOIN facility_property fp ON fp.facility_id = facilities.id").
		Where("fp.property_id IN ?", ids).
		Group("facilities.id, facilities.name").
		Order("count DESC, facilities.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(FacilityCounts, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, FacilityCount{Name: row.Name, Count: row.Count})
	}
	return counts, nil
}

func buildPropertyResult(property models.Property, quoteStart, quoteEnd time.Time) PropertyResult {
	apartments := make([]ApartmentSummary, 0, len(property.Apartments))
	for _, apartment := range property.Apartments {
		summary := ApartmentSummary{
			ID:               apartment.ID,
			Name:             apartment.Name,
			Size:             apartment.Size,
			BedsList:         BedsList(apartment.Beds()),
			Bathrooms:        apartment.Bathrooms,
			Price:            CalculateApartmentPriceForDates(apartment.Prices, quoteStart, quoteEnd),
			WheelchairAccess: apartment.WheelchairAccess,
			PetsAllowed:      apartment.PetsAllowed,
			SmokingAllowed:   apartment.SmokingAllowed,
			FreeCancellation: apartment.FreeCancellation,
			AllDayAccess:     apartment.AllDayAccess,
		}
		if apartment.ApartmentType != nil {
			summary.Type = &apartment.ApartmentType.Name
		}
		apartments = append(apartments, summary)
	}

	return PropertyResult{
		ID:            property.ID,
		Name:          property.Name,
		Address:       property.Address(),
		Lat:           property.Lat,
		Long:          property.Long,
		Apartments:    apartments,
		Photos:        property.PhotoURLs(),
		AverageRating: property.AverageRating,
	}
}

// buildPageLinks renders first/last/prev/next URLs preserving every filter
// from the original query string.
func buildPageLinks(filters SearchFilters, page, lastPage int) PageLinks {
	pageURL := func(p int) string {
		values := url.Values{}
		for key, vals := range filters.Query {
			if key == "page" {
				continue
			}
			values[key] = vals
		}
		values.Set("page", strconv.Itoa(p))
		return filters.BasePath + "?" + values.Encode()
	}

	links := PageLinks{
		First: pageURL(1),
		Last:  pageURL(lastPage),
	}
	if page > 1 {
		prev := pageURL(page - 1)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		links.Next = &next
	}
	return links
}
