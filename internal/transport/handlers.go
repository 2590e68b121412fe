package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/service"
)

type BookingHandler struct {
	bookingService  service.BookingService
	feedbackService service.FeedbackService
	exportService   service.ExportService
}

func NewBookingHandler(bookingService service.BookingService, feedbackService service.FeedbackService, exportService service.ExportService) *BookingHandler {
	return &BookingHandler{
		bookingService:  bookingService,
		feedbackService: feedbackService,
		exportService:   exportService,
	}
}

// SuccessResponse представляет успешный ответ
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

// respondError maps domain errors to HTTP statuses. An empty result is not
// a failure and is answered with 200 and an empty list.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrEmptyStore):
		respondOK(c, http.StatusOK, err.Error(), []*entity.Booking{})
	case errors.Is(err, entity.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: err.Error()})
	case errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: err.Error()})
	}
}
