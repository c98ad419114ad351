package routes

import (
	"booking-clone-server/services"
	"booking-clone-server/storage"
	"strconv"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
)

// SearchProperties handles GET /api/search. Unknown or half-specified
// filter combinations are not errors; the dimension simply stays inactive.
func SearchProperties(ctx iris.Context) {
	filters := services.SearchFilters{
		CityID:      uint(ctx.URLParamIntDefault("city", 0)),
		CountryID:   uint(ctx.URLParamIntDefault("country", 0)),
		GeoobjectID: uint(ctx.URLParamIntDefault("geoobject", 0)),
		Page:        ctx.URLParamIntDefault("page", 1),
		BasePath:    ctx.Path(),
		Query:       ctx.Request().URL.Query(),
	}

	filters.Adults = optionalInt(ctx, "adults")
	filters.Children = optionalInt(ctx, "children")
	filters.PriceFrom = optionalInt(ctx, "price_from")
	filters.PriceTo = optionalInt(ctx, "price_to")

	filters.StartDate = optionalDate(ctx, "start_date")
	filters.EndDate = optionalDate(ctx, "end_date")

	filters.FacilityIDs = facilityIDs(ctx)

	filters.WheelchairAccess = optionalBool(ctx, "wheelchair_access")
	filters.PetsAllowed = optionalBool(ctx, "pets_allowed")
	filters.SmokingAllowed = optionalBool(ctx, "smoking_allowed")
	filters.FreeCancellation = optionalBool(ctx, "free_cancellation")
	filters.AllDayAccess = optionalBool(ctx, "all_day_access")

	result, err := services.SearchProperties(storage.DB, filters)
	if err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to search properties"})
		return
	}

	ctx.JSON(result)
}

func optionalInt(ctx iris.Context, name string) *int {
	raw := strings.TrimSpace(ctx.URLParam(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func optionalBool(ctx iris.Context, name string) *bool {
	raw := strings.TrimSpace(ctx.URLParam(name))
	if raw == "" {
		return nil
	}
	value := raw == "1" || strings.EqualFold(raw, "true")
	return &value
}

func optionalDate(ctx iris.Context, name string) *time.Time {
	raw := strings.TrimSpace(ctx.URLParam(name))
	if raw == "" {
		return nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &value
}

// facilityIDs accepts both repeated facilities params and a comma list.
func facilityIDs(ctx iris.Context) []uint {
	var ids []uint
	for _, raw := range ctx.URLParamSlice("facilities") {
		for _, piece := range strings.Split(raw, ",") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if id, err := strconv.ParseUint(piece, 10, 32); err == nil {
				ids = append(ids, uint(id))
			}
		}
	}
	return ids
}
