package routes

import (
	"booking-clone-server/models"
	"booking-clone-server/storage"
	"booking-clone-server/utils"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// buildBookingTestApp creates a minimal Iris app with the booking routes, a
// real JWT verifier and an in-memory database behind storage.DB.
func buildBookingTestApp(t *testing.T) *iris.Application {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	storage.PerformMigrations(db)
	storage.DB = db

	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	booking := app.Party("/api/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		booking.Get("/", GetUserBookings)
		booking.Post("/", CreateBooking)
		booking.Get("/{id:uint}", GetBooking)
		booking.Put("/{id:uint}", UpdateBookingRating)
		booking.Delete("/{id:uint}", CancelBooking)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func signGuestToken(userID uint) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: userID, Role: "user"})
	return string(token)
}

func doJSON(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

// seedBookableApartment creates a property with one apartment for 2 adults
// and 1 child, priced 100 per day through May 2030.
func seedBookableApartment(t *testing.T) (models.Property, models.Apartment) {
	t.Helper()

	property := models.Property{Name: "Beach hotel", AddressStreet: "Quay 1", AddressPostcode: "1111"}
	if err := storage.DB.Create(&property).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	apartment := models.Apartment{PropertyID: property.ID, Name: "Sea view", CapacityAdults: 2, CapacityChildren: 1}
	if err := storage.DB.Create(&apartment).Error; err != nil {
		t.Fatalf("create apartment: %v", err)
	}
	period := models.PricePeriod{
		ApartmentID: apartment.ID,
		StartDate:   testDate(t, "2030-05-01"),
		EndDate:     testDate(t, "2030-05-31"),
		Price:       100,
	}
	if err := storage.DB.Create(&period).Error; err != nil {
		t.Fatalf("create price period: %v", err)
	}
	return property, apartment
}

func TestCreateBooking(t *testing.T) {
	app := buildBookingTestApp(t)
	_, apartment := seedBookableApartment(t)
	token := signGuestToken(1)

	resp := doJSON(app, http.MethodPost, "/api/bookings", token, CreateBookingInput{
		ApartmentID:    apartment.ID,
		StartDate:      "2030-05-01",
		EndDate:        "2030-05-03",
		GuestsAdults:   2,
		GuestsChildren: 1,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created BookingResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Checkin and checkout days both count, so three days at 100.
	if created.TotalPrice != 300 {
		t.Fatalf("total_price = %d, want 300", created.TotalPrice)
	}
	if created.ApartmentName != "Beach hotel: Sea view" {
		t.Fatalf("apartment_name = %q", created.ApartmentName)
	}
	if created.CancelledAt != nil {
		t.Fatal("fresh booking must not carry a cancellation date")
	}

	// The booking -> apartment -> property chain resolves from the store.
	var stored models.Booking
	if err := storage.DB.Preload("Apartment.Property").First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if stored.Apartment == nil || stored.Apartment.Property == nil {
		t.Fatal("apartment and its property must preload")
	}
	if stored.Apartment.Property.Name != "Beach hotel" {
		t.Fatalf("property name = %q, want Beach hotel", stored.Apartment.Property.Name)
	}

	// Overlapping request is rejected, including the shared checkout day.
	resp = doJSON(app, http.MethodPost, "/api/bookings", token, CreateBookingInput{
		ApartmentID:  apartment.ID,
		StartDate:    "2030-05-03",
		EndDate:      "2030-05-05",
		GuestsAdults: 1,
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for overlapping dates, got %d", resp.Code)
	}
	var failure struct {
		Code string `json:"code"`
	}
	json.Unmarshal(resp.Body.Bytes(), &failure)
	if failure.Code != "DATE_RANGE_UNAVAILABLE" {
		t.Fatalf("code = %q, want DATE_RANGE_UNAVAILABLE", failure.Code)
	}

	// The day after checkout is free again.
	resp = doJSON(app, http.MethodPost, "/api/bookings", token, CreateBookingInput{
		ApartmentID:  apartment.ID,
		StartDate:    "2030-05-04",
		EndDate:      "2030-05-05",
		GuestsAdults: 1,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for adjacent stay, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateBookingMalformedDates(t *testing.T) {
	app := buildBookingTestApp(t)
	_, apartment := seedBookableApartment(t)

	// Rejected before any date math, whether by the body validator or the
	// parse guard behind it.
	resp := doJSON(app, http.MethodPost, "/api/bookings", signGuestToken(1), CreateBookingInput{
		ApartmentID:  apartment.ID,
		StartDate:    "2030-13-99",
		EndDate:      "2030-05-02",
		GuestsAdults: 1,
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed start_date, got %d", resp.Code)
	}

	var count int64
	storage.DB.Model(&models.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("%d bookings created from a malformed request, want none", count)
	}
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	app := buildBookingTestApp(t)
	_, apartment := seedBookableApartment(t)

	resp := doJSON(app, http.MethodPost, "/api/bookings", signGuestToken(1), CreateBookingInput{
		ApartmentID:  apartment.ID,
		StartDate:    "2030-05-01",
		EndDate:      "2030-05-02",
		GuestsAdults: 3,
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	var failure struct {
		Code string `json:"code"`
	}
	json.Unmarshal(resp.Body.Bytes(), &failure)
	if failure.Code != "CAPACITY_EXCEEDED" {
		t.Fatalf("code = %q, want CAPACITY_EXCEEDED", failure.Code)
	}
}

func TestCreateBookingUnknownApartment(t *testing.T) {
	app := buildBookingTestApp(t)

	resp := doJSON(app, http.MethodPost, "/api/bookings", signGuestToken(1), CreateBookingInput{
		ApartmentID:  12345,
		StartDate:    "2030-05-01",
		EndDate:      "2030-05-02",
		GuestsAdults: 1,
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	var failure struct {
		Code string `json:"code"`
	}
	json.Unmarshal(resp.Body.Bytes(), &failure)
	if failure.Code != "APARTMENT_NOT_FOUND" {
		t.Fatalf("code = %q, want APARTMENT_NOT_FOUND", failure.Code)
	}
}

func TestCreateBookingRequiresToken(t *testing.T) {
	app := buildBookingTestApp(t)
	_, apartment := seedBookableApartment(t)

	resp := doJSON(app, http.MethodPost, "/api/bookings", "", CreateBookingInput{
		ApartmentID:  apartment.ID,
		StartDate:    "2030-05-01",
		EndDate:      "2030-05-02",
		GuestsAdults: 1,
	})
	if resp.Code == http.StatusCreated || resp.Code == http.StatusOK {
		t.Fatalf("expected rejection without token, got %d", resp.Code)
	}
}

func TestUpdateBookingRating(t *testing.T) {
	app := buildBookingTestApp(t)
	property, apartment := seedBookableApartment(t)

	booking := models.Booking{
		ApartmentID: apartment.ID,
		UserID:      1,
		StartDate:   testDate(t, "2030-05-01"),
		EndDate:     testDate(t, "2030-05-02"),
		TotalPrice:  200,
	}
	storage.DB.Create(&booking)

	resp := doJSON(app, http.MethodPut, "/api/bookings/1", signGuestToken(1), UpdateBookingInput{
		Rating:        9,
		ReviewComment: "Lovely stay, would absolutely come back again.",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated BookingResponse
	json.Unmarshal(resp.Body.Bytes(), &updated)
	if updated.Rating == nil || *updated.Rating != 9 {
		t.Fatalf("rating = %v, want 9", updated.Rating)
	}

	// The property aggregate follows immediately.
	var reloaded models.Property
	storage.DB.First(&reloaded, property.ID)
	if reloaded.AverageRating == nil || *reloaded.AverageRating != 9 {
		t.Fatalf("average_rating = %v, want 9", reloaded.AverageRating)
	}

	// Out-of-range ratings never reach the database.
	resp = doJSON(app, http.MethodPut, "/api/bookings/1", signGuestToken(1), UpdateBookingInput{Rating: 11})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating 11, got %d", resp.Code)
	}
}

func TestCancelBookingFreesDates(t *testing.T) {
	app := buildBookingTestApp(t)
	_, apartment := seedBookableApartment(t)
	token := signGuestToken(1)

	booking := models.Booking{
		ApartmentID: apartment.ID,
		UserID:      1,
		StartDate:   testDate(t, "2030-05-01"),
		EndDate:     testDate(t, "2030-05-03"),
	}
	storage.DB.Create(&booking)

	resp := doJSON(app, http.MethodDelete, "/api/bookings/1", token, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	// Cancelled bookings stay readable, flagged with their cancellation date.
	resp = doJSON(app, http.MethodGet, "/api/bookings/1", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cancelled booking, got %d", resp.Code)
	}
	var cancelled BookingResponse
	json.Unmarshal(resp.Body.Bytes(), &cancelled)
	if cancelled.CancelledAt == nil {
		t.Fatal("cancelled booking must expose cancelled_at")
	}

	// And the dates are immediately bookable again.
	resp = doJSON(app, http.MethodPost, "/api/bookings", token, CreateBookingInput{
		ApartmentID:  apartment.ID,
		StartDate:    "2030-05-01",
		EndDate:      "2030-05-03",
		GuestsAdults: 2,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 after cancellation, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBookingOwnership(t *testing.T) {
	app := buildBookingTestApp(t)
	_, apartment := seedBookableApartment(t)

	booking := models.Booking{
		ApartmentID: apartment.ID,
		UserID:      1,
		StartDate:   testDate(t, "2030-05-01"),
		EndDate:     testDate(t, "2030-05-02"),
	}
	storage.DB.Create(&booking)

	stranger := signGuestToken(2)
	if resp := doJSON(app, http.MethodGet, "/api/bookings/1", stranger, nil); resp.Code != http.StatusForbidden {
		t.Fatalf("GET as stranger: expected 403, got %d", resp.Code)
	}
	if resp := doJSON(app, http.MethodDelete, "/api/bookings/1", stranger, nil); resp.Code != http.StatusForbidden {
		t.Fatalf("DELETE as stranger: expected 403, got %d", resp.Code)
	}

	// The bookings list is scoped to the caller.
	resp := doJSON(app, http.MethodGet, "/api/bookings", stranger, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.Code)
	}
	var list []BookingResponse
	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Fatalf("stranger sees %d bookings, want none", len(list))
	}
}
