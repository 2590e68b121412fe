package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/service"
)

// Числовые поля принимаются и как числа, и как строки с числом
type addBookingBody struct {
	CustomerName string      `json:"customer_name" binding:"required"`
	RoomNumber   json.Number `json:"room_number" binding:"required"`
	Nights       json.Number `json:"nights" binding:"required"`
	RatePerNight json.Number `json:"rate_per_night" binding:"required"`
}

type updateBookingBody struct {
	Nights       json.Number `json:"nights"`
	RatePerNight json.Number `json:"rate_per_night"`
}

type feedbackBody struct {
	Rating  json.Number `json:"rating" binding:"required"`
	Comment string      `json:"comment"`
}

type revenueResponse struct {
	TotalRevenue float64 `json:"total_revenue"`
}

func (h *BookingHandler) AddBooking(c *gin.Context) {
	var body addBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err.Error()))
		return
	}

	booking, err := h.bookingService.AddBooking(c.Request.Context(), &service.AddBookingRequest{
		CustomerName: body.CustomerName,
		RoomNumber:   body.RoomNumber.String(),
		Nights:       body.Nights.String(),
		RatePerNight: body.RatePerNight.String(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, fmt.Sprintf("Booking added for %s in room %d.", booking.CustomerName, booking.RoomNumber), booking)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, fmt.Sprintf("%d bookings", len(bookings)), bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "booking found", booking)
}

func (h *BookingHandler) SearchBookings(c *gin.Context) {
	bookings, err := h.bookingService.SearchBookings(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, fmt.Sprintf("%d bookings", len(bookings)), bookings)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var body updateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), c.Param("name"), &service.UpdateBookingRequest{
		Nights:       body.Nights.String(),
		RatePerNight: body.RatePerNight.String(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, fmt.Sprintf("Booking updated for %s.", booking.CustomerName), booking)
}

func (h *BookingHandler) Checkout(c *gin.Context) {
	name := c.Param("name")
	if err := h.bookingService.Checkout(c.Request.Context(), name); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, fmt.Sprintf("Checked out %s.", name), nil)
}

func (h *BookingHandler) CalculateRevenue(c *gin.Context) {
	revenue, err := h.bookingService.CalculateRevenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, fmt.Sprintf("Total Revenue: $%.2f", revenue), revenueResponse{TotalRevenue: revenue})
}

func (h *BookingHandler) LeaveFeedback(c *gin.Context) {
	var body feedbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err.Error()))
		return
	}

	booking, err := h.feedbackService.LeaveFeedback(c.Request.Context(), c.Param("name"), &service.FeedbackRequest{
		Selector: body.Rating.String(),
		Comment:  body.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Thank you for your feedback!", booking)
}

func (h *BookingHandler) ViewFeedback(c *gin.Context) {
	bookings, err := h.feedbackService.ViewFeedback(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, fmt.Sprintf("%d reviews", len(bookings)), bookings)
}

func (h *BookingHandler) ExportCSV(c *gin.Context) {
	result, err := h.exportService.ExportCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, fmt.Sprintf("Data exported to %s successfully.", result.Path), result)
}
