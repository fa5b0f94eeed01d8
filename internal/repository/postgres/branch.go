package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type branchRepository struct {
	db *sql.DB
}

func NewBranchRepository(db *sql.DB) repository.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	var b domain.Branch
	query := `SELECT id, name, address, COALESCE(contact_number, ''), COALESCE(working_hours, '')
	          FROM branches WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.Name, &b.Address, &b.ContactNumber, &b.WorkingHours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("branch %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
