package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type rentalOrderRepository struct {
	db *sql.DB
}

func NewRentalOrderRepository(db *sql.DB) repository.RentalOrderRepository {
	return &rentalOrderRepository{db: db}
}

const rentalColumns = `id, renter_id, vehicle_id, branch_start_id, branch_end_id, staff_id,
	       start_time, end_time, estimated_cost_cents, deposit_cents, actual_cost_cents,
	       status, COALESCE(cancel_reason, ''), COALESCE(reject_reason, ''), created_on, updated_on`

func (r *rentalOrderRepository) Create(ctx context.Context, o *domain.RentalOrder) error {
	query := `INSERT INTO rental_orders (id, renter_id, vehicle_id, branch_start_id, branch_end_id,
	          start_time, end_time, estimated_cost_cents, deposit_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	o.CreatedOn = now
	o.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, o.ID, o.RenterID, o.VehicleID, o.BranchStartID, o.BranchEndID,
		o.StartTime, o.EndTime, o.EstimatedCostCents, o.DepositCents, o.Status, now, now)
	return err
}

func (r *rentalOrderRepository) CreateDetail(ctx context.Context, d *domain.RentalOrderDetail) error {
	query := `INSERT INTO rental_order_details (id, rental_id, vehicle_id, created_on)
	          VALUES ($1, $2, $3, $4)`
	d.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, d.ID, d.RentalID, d.VehicleID, d.CreatedOn)
	return err
}

func (r *rentalOrderRepository) GetByID(ctx context.Context, id string) (*domain.RentalOrder, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_orders WHERE id = $1`
	o, err := scanRentalOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *rentalOrderRepository) GetDetails(ctx context.Context, rentalID string) ([]domain.RentalOrderDetail, error) {
	query := `SELECT id, rental_id, vehicle_id, created_on FROM rental_order_details
	          WHERE rental_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.RentalOrderDetail
	for rows.Next() {
		var d domain.RentalOrderDetail
		if err := rows.Scan(&d.ID, &d.RentalID, &d.VehicleID, &d.CreatedOn); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// UpdateStatus flips the status only when the row is still in the expected
// source status. A false return means another actor got there first (or the
// caller's view was stale); callers surface that as a lost race.
func (r *rentalOrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RentalStatus) (bool, error) {
	query := `UPDATE rental_orders SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *rentalOrderRepository) UpdateStatusWithReason(ctx context.Context, id string, from, to domain.RentalStatus, reason string) (bool, error) {
	col := "cancel_reason"
	if to == domain.RentalStatusRejected {
		col = "reject_reason"
	}
	query := fmt.Sprintf(`UPDATE rental_orders SET status = $1, %s = $2, updated_on = $3 WHERE id = $4 AND status = $5`, col)
	res, err := r.db.ExecContext(ctx, query, to, reason, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *rentalOrderRepository) ListByRenter(ctx context.Context, renterID string, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	where := `WHERE renter_id = $1`
	args := []interface{}{renterID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}
	return r.list(ctx, where, args, page, pageSize)
}

// ListByStatus pages across all renters; an empty status means no filter.
func (r *rentalOrderRepository) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	var where string
	var args []interface{}
	if status != "" {
		where = `WHERE status = $1`
		args = append(args, status)
	}
	return r.list(ctx, where, args, page, pageSize)
}

func (r *rentalOrderRepository) list(ctx context.Context, where string, args []interface{}, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM rental_orders ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM rental_orders %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		rentalColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		o, err := scanRentalOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}

func (r *rentalOrderRepository) ListActivePastEnd(ctx context.Context, before time.Time) ([]domain.RentalOrder, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_orders
	          WHERE status = $1 AND end_time < $2 ORDER BY end_time`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusActive, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		o, err := scanRentalOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRentalOrder(row rowScanner) (*domain.RentalOrder, error) {
	var o domain.RentalOrder
	var staffID sql.NullString
	var actualCost sql.NullInt64
	err := row.Scan(&o.ID, &o.RenterID, &o.VehicleID, &o.BranchStartID, &o.BranchEndID, &staffID,
		&o.StartTime, &o.EndTime, &o.EstimatedCostCents, &o.DepositCents, &actualCost,
		&o.Status, &o.CancelReason, &o.RejectReason, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if staffID.Valid {
		o.StaffID = &staffID.String
	}
	if actualCost.Valid {
		o.ActualCostCents = &actualCost.Int64
	}
	return &o, nil
}
