package routes

import (
	"booking-clone-server/models"
	"booking-clone-server/storage"

	"github.com/kataras/iris/v12"
)

// Reference data consumed by the search filter UI.

func ListCountries(ctx iris.Context) {
	var countries []models.Country
	if err := storage.DB.Preload("Cities").Find(&countries).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to load countries"})
		return
	}
	ctx.JSON(countries)
}

func ListCities(ctx iris.Context) {
	var cities []models.City
	if err := storage.DB.Find(&cities).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to load cities"})
		return
	}
	ctx.JSON(cities)
}

func ListGeoobjects(ctx iris.Context) {
	var geoobjects []models.Geoobject
	if err := storage.DB.Find(&geoobjects).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to load geoobjects"})
		return
	}
	ctx.JSON(geoobjects)
}
