package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
)

type feedbackService struct {
	store *Store
}

func NewFeedbackService(store *Store) FeedbackService {
	return &feedbackService{store: store}
}

// LeaveFeedback validates the rating selector before touching the ledger;
// retrying on a bad selector is up to the caller.
func (s *feedbackService) LeaveFeedback(ctx context.Context, customerName string, req *FeedbackRequest) (*entity.Booking, error) {
	var booking *entity.Booking
	err := s.store.Update(ctx, func(ledger *entity.Ledger) error {
		b, ok := ledger.Get(customerName)
		if !ok {
			return notFound(customerName)
		}

		rating, err := entity.RatingFromSelector(req.Selector)
		if err != nil {
			return err
		}

		b.Feedback = &entity.Feedback{Rating: rating, Comment: req.Comment}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"customer_name": customerName,
		"rating":        booking.Feedback.Rating,
	}).Info("Feedback saved")

	return booking, nil
}

// ViewFeedback возвращает бронирования с отзывами
func (s *feedbackService) ViewFeedback(ctx context.Context) ([]*entity.Booking, error) {
	var withFeedback []*entity.Booking
	err := s.store.View(ctx, func(ledger *entity.Ledger) error {
		withFeedback = ledger.Filter((*entity.Booking).HasFeedback)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	if len(withFeedback) == 0 {
		return nil, entity.ErrEmptyStore
	}
	return withFeedback, nil
}
