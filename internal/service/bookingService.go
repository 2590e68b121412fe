package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
)

type bookingService struct {
	store *Store
}

// NewBookingService создает новый экземпляр BookingService
func NewBookingService(store *Store) BookingService {
	return &bookingService{store: store}
}

// AddBooking создает бронирование или перезаписывает существующее с тем же именем
func (s *bookingService) AddBooking(ctx context.Context, req *AddBookingRequest) (*entity.Booking, error) {
	booking, err := entity.ParseBooking(req.CustomerName, req.RoomNumber, req.Nights, req.RatePerNight)
	if err != nil {
		return nil, err
	}

	replaced := false
	err = s.store.Update(ctx, func(ledger *entity.Ledger) error {
		_, replaced = ledger.Get(booking.CustomerName)
		ledger.Put(booking)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"customer_name": booking.CustomerName,
		"room_number":   booking.RoomNumber,
		"nights":        booking.Nights,
		"total_charge":  booking.TotalCharge,
		"replaced":      replaced,
	}).Info("Booking added")

	return booking, nil
}

// ListBookings возвращает все бронирования в порядке хранения
func (s *bookingService) ListBookings(ctx context.Context) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := s.store.View(ctx, func(ledger *entity.Ledger) error {
		bookings = ledger.Bookings()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil, entity.ErrEmptyStore
	}
	return bookings, nil
}

func (s *bookingService) GetBooking(ctx context.Context, customerName string) (*entity.Booking, error) {
	var booking *entity.Booking
	err := s.store.View(ctx, func(ledger *entity.Ledger) error {
		b, ok := ledger.Get(customerName)
		if !ok {
			return notFound(customerName)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Checkout удаляет бронирование клиента
func (s *bookingService) Checkout(ctx context.Context, customerName string) error {
	err := s.store.Update(ctx, func(ledger *entity.Ledger) error {
		if !ledger.Remove(customerName) {
			return notFound(customerName)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("customer_name", customerName).Info("Customer checked out")
	return nil
}

func (s *bookingService) CalculateRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := s.store.View(ctx, func(ledger *entity.Ledger) error {
		revenue = ledger.TotalRevenue()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to calculate revenue: %w", err)
	}
	return revenue, nil
}

// SearchBookings ищет по части имени клиента или точному номеру комнаты
func (s *bookingService) SearchBookings(ctx context.Context, term string) ([]*entity.Booking, error) {
	var found []*entity.Booking
	err := s.store.View(ctx, func(ledger *entity.Ledger) error {
		found = ledger.Filter(func(b *entity.Booking) bool {
			return b.Matches(term)
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	if len(found) == 0 {
		return nil, entity.ErrEmptyStore
	}
	return found, nil
}

// UpdateBooking меняет количество ночей и/или цену и пересчитывает сумму
func (s *bookingService) UpdateBooking(ctx context.Context, customerName string, req *UpdateBookingRequest) (*entity.Booking, error) {
	var updated *entity.Booking
	err := s.store.Update(ctx, func(ledger *entity.Ledger) error {
		booking, ok := ledger.Get(customerName)
		if !ok {
			return notFound(customerName)
		}

		nights := booking.Nights
		if strings.TrimSpace(req.Nights) != "" {
			n, err := entity.ParseInt("nights", req.Nights)
			if err != nil {
				return err
			}
			nights = n
		}

		rate := booking.RatePerNight
		if strings.TrimSpace(req.RatePerNight) != "" {
			r, err := entity.ParseFloat("rate per night", req.RatePerNight)
			if err != nil {
				return err
			}
			rate = r
		}

		total, err := entity.ChargeFor(nights, rate)
		if err != nil {
			return err
		}

		booking.Nights = nights
		booking.RatePerNight = rate
		booking.TotalCharge = total
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"customer_name": updated.CustomerName,
		"nights":        updated.Nights,
		"rate":          updated.RatePerNight,
		"total_charge":  updated.TotalCharge,
	}).Info("Booking updated")

	return updated, nil
}

func notFound(customerName string) error {
	return fmt.Errorf("%w: %s", entity.ErrBookingNotFound, customerName)
}
