package routes

import (
	"booking-clone-server/models"
	"booking-clone-server/services"
	"booking-clone-server/storage"
	"booking-clone-server/utils"
	"encoding/json"
	"log"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

func parseDateRange(start, end string) (time.Time, time.Time, bool) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return startDate, endDate, true
}

type CreatePropertyInput struct {
	Name            string   `json:"name" validate:"required,max=255"`
	CityID          uint     `json:"city_id" validate:"required"`
	AddressStreet   string   `json:"address_street" validate:"required"`
	AddressPostcode string   `json:"address_postcode" validate:"required"`
	Lat             float64  `json:"lat" validate:"gte=-90,lte=90"`
	Long            float64  `json:"long" validate:"gte=-180,lte=180"`
	Photos          []string `json:"photos"`
}

type CreateRoomInput struct {
	Name       string `json:"name"`
	RoomTypeID *uint  `json:"room_type_id"`
	Beds       []struct {
		BedTypeID uint   `json:"bed_type_id" validate:"required"`
		Name      string `json:"name"`
	} `json:"beds"`
}

type CreateApartmentInput struct {
	PropertyID       uint              `json:"property_id" validate:"required"`
	ApartmentTypeID  *uint             `json:"apartment_type_id"`
	Name             string            `json:"name" validate:"required,max=255"`
	CapacityAdults   int               `json:"capacity_adults" validate:"gte=0"`
	CapacityChildren int               `json:"capacity_children" validate:"gte=0"`
	Size             *int              `json:"size"`
	Bathrooms        int               `json:"bathrooms" validate:"gte=0"`
	WheelchairAccess bool              `json:"wheelchair_access"`
	PetsAllowed      bool              `json:"pets_allowed"`
	SmokingAllowed   bool              `json:"smoking_allowed"`
	FreeCancellation bool              `json:"free_cancellation"`
	AllDayAccess     bool              `json:"all_day_access"`
	Rooms            []CreateRoomInput `json:"rooms"`
	FacilityIDs      []uint            `json:"facilities"`
}

type CreatePricePeriodInput struct {
	ApartmentID uint   `json:"apartment_id" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Price       int    `json:"price" validate:"gte=0"`
}

// CreateProperty registers a new property for the authenticated owner.
// Missing coordinates are resolved by geocoding the address; a geocoder
// failure leaves them at zero rather than failing the creation.
func CreateProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	lat, long := input.Lat, input.Long
	if lat == 0 && long == 0 {
		var city models.City
		address := input.AddressStreet + ", " + input.AddressPostcode
		if err := storage.DB.First(&city, input.CityID).Error; err == nil {
			address += ", " + city.Name
		}
		geoLat, geoLong, err := services.GeocodeAddress(address)
		if err != nil {
			log.Println("geocoding failed for new property:", err)
		} else {
			lat, long = geoLat, geoLong
		}
	}

	photos := input.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, _ := json.Marshal(photos)

	property := models.Property{
		OwnerID:         userID,
		Name:            input.Name,
		CityID:          input.CityID,
		AddressStreet:   input.AddressStreet,
		AddressPostcode: input.AddressPostcode,
		Lat:             lat,
		Long:            long,
		Photos:          datatypes.JSON(photosJSON),
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to create property"})
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

// GetProperty returns one property with everything search shows about it.
func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	err := storage.DB.
		Preload("City").
		Preload("Apartments.ApartmentType").
		Preload("Apartments.Rooms.Beds.BedType").
		Preload("Apartments.Prices").
		Preload("Facilities").
		First(&property, id).Error
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(property)
}

// CreateApartment adds a unit (optionally with rooms and beds) to one of the
// owner's properties.
func CreateApartment(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateApartmentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Where("id = ? AND owner_id = ?", input.PropertyID, userID).
		First(&property).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Property not found or access denied"})
		return
	}

	apartment := models.Apartment{
		PropertyID:       input.PropertyID,
		ApartmentTypeID:  input.ApartmentTypeID,
		Name:             input.Name,
		CapacityAdults:   input.CapacityAdults,
		CapacityChildren: input.CapacityChildren,
		Size:             input.Size,
		Bathrooms:        input.Bathrooms,
		WheelchairAccess: input.WheelchairAccess,
		PetsAllowed:      input.PetsAllowed,
		SmokingAllowed:   input.SmokingAllowed,
		FreeCancellation: input.FreeCancellation,
		AllDayAccess:     input.AllDayAccess,
	}
	for _, room := range input.Rooms {
		modelRoom := models.Room{Name: room.Name, RoomTypeID: room.RoomTypeID}
		for _, bed := range room.Beds {
			modelRoom.Beds = append(modelRoom.Beds, models.Bed{
				BedTypeID: bed.BedTypeID,
				Name:      bed.Name,
			})
		}
		apartment.Rooms = append(apartment.Rooms, modelRoom)
	}

	if err := storage.DB.Create(&apartment).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to create apartment"})
		return
	}

	if len(input.FacilityIDs) > 0 {
		var facilities []models.Facility
		if err := storage.DB.Find(&facilities, input.FacilityIDs).Error; err == nil {
			storage.DB.Model(&apartment).Association("Facilities").Append(&facilities)
		}
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(apartment)
}

// CreatePricePeriod prices a date range for one of the owner's apartments.
// Overlaps with existing periods are allowed; pricing tolerates them.
func CreatePricePeriod(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreatePricePeriodInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, endDate, ok := parseDateRange(input.StartDate, input.EndDate)
	if !ok || endDate.Before(startDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "start_date must not be after end_date", ctx)
		return
	}

	var apartment models.Apartment
	err := storage.DB.
		Joins("JOIN properties ON properties.id = apartments.property_id").
		Where("apartments.id = ? AND properties.owner_id = ?", input.ApartmentID, userID).
		First(&apartment).Error
	if err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Apartment not found or access denied"})
		return
	}

	period := models.PricePeriod{
		ApartmentID: input.ApartmentID,
		StartDate:   startDate,
		EndDate:     endDate,
		Price:       input.Price,
	}
	if err := storage.DB.Create(&period).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to create price period"})
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(period)
}
