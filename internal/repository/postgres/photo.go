package postgres

import (
	"context"
	"database/sql"
	"time"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type photoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) CreatePending(ctx context.Context, p *domain.PendingPhoto) error {
	query := `INSERT INTO pending_photos (id, storage_key, uploader_id, rental_id, expires_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	p.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, p.ID, p.StorageKey, p.UploaderID, p.RentalID, p.ExpiresOn, p.CreatedOn)
	return err
}

func (r *photoRepository) ListExpired(ctx context.Context, before time.Time) ([]domain.PendingPhoto, error) {
	query := `SELECT id, storage_key, uploader_id, rental_id, expires_on, created_on
	          FROM pending_photos WHERE expires_on < $1`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.PendingPhoto
	for rows.Next() {
		var p domain.PendingPhoto
		if err := rows.Scan(&p.ID, &p.StorageKey, &p.UploaderID, &p.RentalID, &p.ExpiresOn, &p.CreatedOn); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *photoRepository) DeletePending(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_photos WHERE id = $1`, id)
	return err
}
