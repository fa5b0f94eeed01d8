package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type feedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `INSERT INTO feedbacks (id, rental_id, renter_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	fb.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, fb.ID, fb.RentalID, fb.RenterID, fb.Rating, fb.Comment, fb.CreatedOn)
	// The unique index on rental_id backs the one-feedback-per-rental rule
	// even under concurrent submissions.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrFeedbackExists
	}
	return err
}

func (r *feedbackRepository) GetByRental(ctx context.Context, rentalID string) (*domain.Feedback, error) {
	var fb domain.Feedback
	query := `SELECT id, rental_id, renter_id, rating, COALESCE(comment, ''), created_on
	          FROM feedbacks WHERE rental_id = $1`
	err := r.db.QueryRowContext(ctx, query, rentalID).
		Scan(&fb.ID, &fb.RentalID, &fb.RenterID, &fb.Rating, &fb.Comment, &fb.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}
