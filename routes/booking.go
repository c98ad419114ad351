package routes

import (
	"booking-clone-server/models"
	"booking-clone-server/services"
	"booking-clone-server/storage"
	"booking-clone-server/utils"
	"errors"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	ApartmentID    uint   `json:"apartment_id" validate:"required"`
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string `json:"end_date" validate:"required,datetime=2006-01-02"`
	GuestsAdults   int    `json:"guests_adults" validate:"gte=0"`
	GuestsChildren int    `json:"guests_children" validate:"gte=0"`
}

type UpdateBookingInput struct {
	Rating        int    `json:"rating" validate:"required,gte=1,lte=10"`
	ReviewComment string `json:"review_comment" validate:"omitempty,min=20"`
}

type BookingResponse struct {
	ID             uint   `json:"id"`
	ApartmentName  string `json:"apartment_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	GuestsAdults   int    `json:"guests_adults"`
	GuestsChildren int    `json:"guests_children"`
	TotalPrice     int    `json:"total_price"`
	CancelledAt    *string `json:"cancelled_at"`
	Rating         *int   `json:"rating"`
	ReviewComment  string `json:"review_comment"`
}

func bookingResponse(booking *models.Booking) BookingResponse {
	response := BookingResponse{
		ID:             booking.ID,
		StartDate:      booking.StartDate.Format("2006-01-02"),
		EndDate:        booking.EndDate.Format("2006-01-02"),
		GuestsAdults:   booking.GuestsAdults,
		GuestsChildren: booking.GuestsChildren,
		TotalPrice:     booking.TotalPrice,
		Rating:         booking.Rating,
		ReviewComment:  booking.ReviewComment,
	}
	if booking.Apartment != nil {
		name := booking.Apartment.Name
		if booking.Apartment.Property != nil {
			name = booking.Apartment.Property.Name + ": " + name
		}
		response.ApartmentName = name
	}
	if booking.DeletedAt.Valid {
		cancelled := booking.DeletedAt.Time.Format("2006-01-02")
		response.CancelledAt = &cancelled
	}
	return response
}

// GetUserBookings lists the authenticated guest's bookings, cancelled ones
// included, ordered by start date.
func GetUserBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	err := storage.DB.Unscoped().
		Preload("Apartment", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Apartment.Property", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).
		Order("start_date").
		Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookingResponse(&bookings[i]))
	}
	ctx.JSON(responses)
}

// CreateBooking validates the request against capacity and availability and,
// when it passes, freezes the total price computed from the apartment's
// price periods. The gate and the insert run in one transaction so two
// overlapping requests cannot both succeed.
func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, endDate, ok := parseDateRange(input.StartDate, input.EndDate)
	if !ok || endDate.Before(startDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "start_date and end_date must be valid dates with end_date not before start_date", ctx)
		return
	}

	var booking models.Booking
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := services.ValidateBookingRequest(tx, input.ApartmentID, startDate, endDate,
			input.GuestsAdults, input.GuestsChildren); err != nil {
			return err
		}

		price, err := services.ComputeApartmentPrice(tx, input.ApartmentID, startDate, endDate)
		if err != nil {
			return err
		}

		booking = models.Booking{
			ApartmentID:    input.ApartmentID,
			UserID:         userID,
			StartDate:      startDate,
			EndDate:        endDate,
			GuestsAdults:   input.GuestsAdults,
			GuestsChildren: input.GuestsChildren,
			TotalPrice:     price,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		var validationErr *services.BookingValidationError
		if errors.As(err, &validationErr) {
			ctx.StatusCode(iris.StatusUnprocessableEntity)
			ctx.JSON(iris.Map{
				"error":   "Validation Error",
				"code":    validationErr.Kind,
				"message": validationErr.Message,
			})
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Preload("Apartment.Property").First(&booking, booking.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(bookingResponse(&booking))
}

// GetBooking shows one booking (cancelled included) to its owning guest.
func GetBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	err := storage.DB.Unscoped().
		Preload("Apartment", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Apartment.Property", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&booking, id).Error
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if booking.UserID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	ctx.JSON(bookingResponse(&booking))
}

// UpdateBookingRating sets the post-stay rating and review, then triggers
// the property rating recompute. Aggregation failures never fail the update.
func UpdateBookingRating(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().GetUintDefault("id", 0)

	var input UpdateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if booking.UserID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	booking.Rating = &input.Rating
	if input.ReviewComment != "" {
		booking.ReviewComment = input.ReviewComment
	}
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	services.UpdatePropertyRating(storage.DB, booking.ID)

	storage.DB.Preload("Apartment.Property").First(&booking, booking.ID)
	ctx.JSON(bookingResponse(&booking))
}

// CancelBooking soft-deletes the booking: it stops blocking availability
// immediately but keeps its price and rating queryable for history.
func CancelBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if booking.UserID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if err := storage.DB.Delete(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}
