package main

import (
	"booking-clone-server/routes"
	"booking-clone-server/storage"
	"booking-clone-server/utils"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/api/search", routes.SearchProperties)

	location := app.Party("/api/location")
	{
		location.Get("/countries", routes.ListCountries)
		location.Get("/cities", routes.ListCities)
		location.Get("/geoobjects", routes.ListGeoobjects)
	}

	apartment := app.Party("/api/apartments")
	{
		apartment.Get("/{id:uint}", routes.GetApartmentDetails)
		apartment.Get("/{id:uint}/price", routes.GetApartmentPrice)
	}

	property := app.Party("/api/property")
	{
		property.Get("/{id:uint}", routes.GetProperty)
		property.Post("/", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.CreateProperty)
		property.Post("/apartment", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.CreateApartment)
		property.Post("/price", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.CreatePricePeriod)
	}

	booking := app.Party("/api/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		booking.Get("/", routes.GetUserBookings)
		booking.Post("/", routes.CreateBooking)
		booking.Get("/{id:uint}", routes.GetBooking)
		booking.Put("/{id:uint}", routes.UpdateBookingRating)
		booking.Delete("/{id:uint}", routes.CancelBooking)
	}

	user := app.Party("/api/user")
	{
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
