package routes

import (
	"booking-clone-server/services"
	"booking-clone-server/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

const apartmentDetailsCacheTTL = 5 * time.Minute

// GetApartmentDetails returns one apartment with its facilities grouped by
// category. Responses are cached in Redis for a few minutes; the cache is
// best-effort and skipped when Redis is not configured.
func GetApartmentDetails(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid apartment ID"})
		return
	}

	cacheKey := fmt.Sprintf("apartment:details:%d", id)
	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(context.Background(), cacheKey).Result(); err == nil {
			ctx.ContentType("application/json")
			ctx.WriteString(cached)
			return
		}
	}

	details, err := services.GetApartmentDetails(storage.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Apartment not found"})
			return
		}
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to load apartment"})
		return
	}

	if storage.Redis != nil {
		if payload, err := json.Marshal(details); err == nil {
			storage.Redis.Set(context.Background(), cacheKey, payload, apartmentDetailsCacheTTL)
		}
	}

	ctx.JSON(details)
}

// GetApartmentPrice quotes the total stay cost for an apartment over a date
// range; absent dates default to tomorrow through the day after.
func GetApartmentPrice(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid apartment ID"})
		return
	}

	startDate, endDate := services.DefaultStayRange()
	if raw := ctx.URLParam("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{"message": "Invalid start date format"})
			return
		}
		startDate = parsed
	}
	if raw := ctx.URLParam("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{"message": "Invalid end date format"})
			return
		}
		endDate = parsed
	}
	if endDate.Before(startDate) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "end_date must not be before start_date"})
		return
	}

	price, err := services.ComputeApartmentPrice(storage.DB, id, startDate, endDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Apartment not found"})
			return
		}
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to compute price"})
		return
	}

	ctx.JSON(iris.Map{
		"apartment_id": id,
		"start_date":   startDate.Format("2006-01-02"),
		"end_date":     endDate.Format("2006-01-02"),
		"price":        price,
	})
}
