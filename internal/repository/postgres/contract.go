package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (id, rental_id, signed_by_renter, signed_by_staff, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, c.ID, c.RentalID, c.SignedByRenter, c.SignedByStaff, now, now)
	return err
}

func (r *contractRepository) GetByRental(ctx context.Context, rentalID string) (*domain.Contract, error) {
	var c domain.Contract
	query := `SELECT id, rental_id, signed_by_renter, signed_by_staff, created_on, updated_on
	          FROM contracts WHERE rental_id = $1`
	err := r.db.QueryRowContext(ctx, query, rentalID).
		Scan(&c.ID, &c.RentalID, &c.SignedByRenter, &c.SignedByStaff, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SetSignature ORs the incoming flags into the stored ones, so signing an
// already-signed contract is a no-op and a signature can never be cleared.
func (r *contractRepository) SetSignature(ctx context.Context, contractID string, signedByStaff, signedByRenter bool) error {
	query := `UPDATE contracts
	          SET signed_by_staff = signed_by_staff OR $1,
	              signed_by_renter = signed_by_renter OR $2,
	              updated_on = $3
	          WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, signedByStaff, signedByRenter, time.Now(), contractID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrContractNotFound
	}
	return nil
}
