package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type inspectionRepository struct {
	db *sql.DB
}

func NewInspectionRepository(db *sql.DB) repository.InspectionRepository {
	return &inspectionRepository{db: db}
}

// CreateCheckinAndActivate appends the check-in record and flips the order
// CONFIRMED -> ACTIVE in one transaction. When the order is no longer
// CONFIRMED the transaction is rolled back and false is returned: a losing
// concurrent submission leaves no trace.
func (r *inspectionRepository) CreateCheckinAndActivate(ctx context.Context, rec *domain.CheckinRecord, rentalID, staffID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE rental_orders SET status = $1, staff_id = $2, updated_on = $3 WHERE id = $4 AND status = $5`,
		domain.RentalStatusActive, staffID, time.Now(), rentalID, domain.RentalStatusConfirmed)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	rec.CreatedOn = time.Now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO checkin_records (id, detail_id, staff_id, odometer_km, battery_level, note, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.DetailID, rec.StaffID, rec.OdometerKm, rec.BatteryLevel, rec.Note, rec.CreatedOn)
	if err != nil {
		return false, err
	}
	if err := insertPhotos(ctx, tx, "checkin_photos", "checkin_id", rec.ID, rec.Photos); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// CreateCheckoutAndComplete appends the check-out record, sets the settled
// actual cost and the revised end time, and flips ACTIVE -> COMPLETED, all
// in one transaction.
func (r *inspectionRepository) CreateCheckoutAndComplete(ctx context.Context, rec *domain.CheckoutRecord, rentalID string, actualCostCents int64, endTime time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE rental_orders SET status = $1, actual_cost_cents = $2, end_time = $3, updated_on = $4
		 WHERE id = $5 AND status = $6`,
		domain.RentalStatusCompleted, actualCostCents, endTime, time.Now(), rentalID, domain.RentalStatusActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	rec.CreatedOn = time.Now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO checkout_records (id, detail_id, staff_id, odometer_km, battery_level, late_fee_cents, extra_fee_cents, note, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.DetailID, rec.StaffID, rec.OdometerKm, rec.BatteryLevel, rec.LateFeeCents, rec.ExtraFeeCents, rec.Note, rec.CreatedOn)
	if err != nil {
		return false, err
	}
	if err := insertPhotos(ctx, tx, "checkout_photos", "checkout_id", rec.ID, rec.Photos); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func insertPhotos(ctx context.Context, tx *sql.Tx, table, fkColumn, recordID string, photos []domain.InspectionPhoto) error {
	for _, p := range photos {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (`+fkColumn+`, url, description) VALUES ($1, $2, $3)`,
			recordID, p.URL, p.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *inspectionRepository) GetCheckinByDetail(ctx context.Context, detailID string) (*domain.CheckinRecord, error) {
	var rec domain.CheckinRecord
	query := `SELECT id, detail_id, staff_id, odometer_km, battery_level, COALESCE(note, ''), created_on
	          FROM checkin_records WHERE detail_id = $1`
	err := r.db.QueryRowContext(ctx, query, detailID).
		Scan(&rec.ID, &rec.DetailID, &rec.StaffID, &rec.OdometerKm, &rec.BatteryLevel, &rec.Note, &rec.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Photos, err = r.listPhotos(ctx, "checkin_photos", "checkin_id", rec.ID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *inspectionRepository) GetCheckoutByDetail(ctx context.Context, detailID string) (*domain.CheckoutRecord, error) {
	var rec domain.CheckoutRecord
	query := `SELECT id, detail_id, staff_id, odometer_km, battery_level, late_fee_cents, extra_fee_cents, COALESCE(note, ''), created_on
	          FROM checkout_records WHERE detail_id = $1`
	err := r.db.QueryRowContext(ctx, query, detailID).
		Scan(&rec.ID, &rec.DetailID, &rec.StaffID, &rec.OdometerKm, &rec.BatteryLevel, &rec.LateFeeCents, &rec.ExtraFeeCents, &rec.Note, &rec.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Photos, err = r.listPhotos(ctx, "checkout_photos", "checkout_id", rec.ID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *inspectionRepository) listPhotos(ctx context.Context, table, fkColumn, recordID string) ([]domain.InspectionPhoto, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT url, COALESCE(description, '') FROM `+table+` WHERE `+fkColumn+` = $1 ORDER BY id`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.InspectionPhoto
	for rows.Next() {
		var p domain.InspectionPhoto
		if err := rows.Scan(&p.URL, &p.Description); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
