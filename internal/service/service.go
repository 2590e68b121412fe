package service

import (
	"context"

	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
)

// BookingService определяет интерфейс для операций с бронированиями
type BookingService interface {
	AddBooking(ctx context.Context, req *AddBookingRequest) (*entity.Booking, error)
	ListBookings(ctx context.Context) ([]*entity.Booking, error)
	GetBooking(ctx context.Context, customerName string) (*entity.Booking, error)
	Checkout(ctx context.Context, customerName string) error
	CalculateRevenue(ctx context.Context) (float64, error)
	SearchBookings(ctx context.Context, term string) ([]*entity.Booking, error)
	UpdateBooking(ctx context.Context, customerName string, req *UpdateBookingRequest) (*entity.Booking, error)
}

type FeedbackService interface {
	LeaveFeedback(ctx context.Context, customerName string, req *FeedbackRequest) (*entity.Booking, error)
	ViewFeedback(ctx context.Context) ([]*entity.Booking, error)
}

type ExportService interface {
	ExportCSV(ctx context.Context) (*ExportResult, error)
}

// AddBookingRequest carries raw operator input; numeric fields are parsed
// by entity.ParseBooking.
type AddBookingRequest struct {
	CustomerName string
	RoomNumber   string
	Nights       string
	RatePerNight string
}

// UpdateBookingRequest: an empty field keeps the stored value.
type UpdateBookingRequest struct {
	Nights       string
	RatePerNight string
}

type FeedbackRequest struct {
	Selector string
	Comment  string
}

type ExportResult struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}
