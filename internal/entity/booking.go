package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// ratingSelectors: menu selector -> rating, in menu order
var ratingSelectors = []struct {
	Selector string
	Rating   Rating
}{
	{"1", RatingExcellent},
	{"2", RatingGood},
	{"3", RatingFair},
	{"4", RatingPoor},
}

// RatingFromSelector maps the 1-4 menu selector to a rating.
func RatingFromSelector(selector string) (Rating, error) {
	selector = strings.TrimSpace(selector)
	for _, s := range ratingSelectors {
		if s.Selector == selector {
			return s.Rating, nil
		}
	}
	return "", fmt.Errorf("%w: rating must be a number from 1 to 4, got %q", ErrInvalidInput, selector)
}

// RatingOptions returns the selectable ratings as "1. Excellent" lines.
func RatingOptions() []string {
	options := make([]string, 0, len(ratingSelectors))
	for _, s := range ratingSelectors {
		options = append(options, s.Selector+". "+string(s.Rating))
	}
	return options
}

type Feedback struct {
	Rating  Rating `json:"rating"`
	Comment string `json:"comment"`
}

type Booking struct {
	CustomerName string    `json:"customer_name"`
	RoomNumber   int       `json:"room_number"`
	Nights       int       `json:"nights"`
	RatePerNight float64   `json:"rate_per_night"`
	TotalCharge  float64   `json:"total_charge"`
	Feedback     *Feedback `json:"feedback"`
}

// NewBooking создает бронирование без отзыва и считает итоговую сумму
func NewBooking(customerName string, roomNumber, nights int, ratePerNight float64) (*Booking, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyName
	}

	total, err := ChargeFor(nights, ratePerNight)
	if err != nil {
		return nil, err
	}

	return &Booking{
		CustomerName: customerName,
		RoomNumber:   roomNumber,
		Nights:       nights,
		RatePerNight: ratePerNight,
		TotalCharge:  total,
	}, nil
}

// ParseBooking parses raw text fields and rejects anything that is not
// numeric where a number is expected.
func ParseBooking(customerName, roomNumber, nights, ratePerNight string) (*Booking, error) {
	room, err := ParseInt("room number", roomNumber)
	if err != nil {
		return nil, err
	}
	n, err := ParseInt("nights", nights)
	if err != nil {
		return nil, err
	}
	rate, err := ParseFloat("rate per night", ratePerNight)
	if err != nil {
		return nil, err
	}
	return NewBooking(customerName, room, n, rate)
}

func ParseInt(field, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidInput, field, value)
	}
	return v, nil
}

// ParseFloat accepts finite numbers only; NaN and Inf cannot be stored as JSON.
func ParseFloat(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidInput, field, value)
	}
	return v, nil
}

// ChargeFor returns nights * rate, rejecting a product that is not finite.
func ChargeFor(nights int, rate float64) (float64, error) {
	total := float64(nights) * rate
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("%w: total charge for %d nights at %g is out of range", ErrInvalidInput, nights, rate)
	}
	return total, nil
}

// Matches reports whether term is part of the customer name or is exactly
// the room number.
func (b *Booking) Matches(term string) bool {
	return strings.Contains(b.CustomerName, term) || strconv.Itoa(b.RoomNumber) == term
}

func (b *Booking) HasFeedback() bool {
	return b.Feedback != nil
}
