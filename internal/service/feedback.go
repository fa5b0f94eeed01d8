package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	orderRepo    repository.RentalOrderRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, orderRepo repository.RentalOrderRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, orderRepo: orderRepo}
}

// Submit records the renter's rating. Only reachable after completion, one
// per rental, and never touches order state.
func (s *feedbackService) Submit(ctx context.Context, renterID, rentalID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, &domain.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	order, err := s.orderRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if order.RenterID != renterID {
		return nil, fmt.Errorf("feedback for rental %s: %w", rentalID, domain.ErrNotOwner)
	}
	if order.Status != domain.RentalStatusCompleted && order.Status != domain.RentalStatusClosed {
		return nil, domain.ErrInvalidStateTransition
	}

	existing, err := s.feedbackRepo.GetByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrFeedbackExists
	}

	fb := &domain.Feedback{
		ID:       uuid.NewString(),
		RentalID: rentalID,
		RenterID: renterID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *feedbackService) GetByRental(ctx context.Context, rentalID string) (*domain.Feedback, error) {
	return s.feedbackRepo.GetByRental(ctx, rentalID)
}
