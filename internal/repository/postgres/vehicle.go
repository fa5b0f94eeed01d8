package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	query := `SELECT id, type_id, license_plate, battery_capacity_kwh, manufacture_year, branch_id
	          FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.TypeID, &v.LicensePlate, &v.BatteryCapacity, &v.ManufactureYear, &v.BranchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) GetTypeByID(ctx context.Context, typeID string) (*domain.VehicleType, error) {
	var vt domain.VehicleType
	query := `SELECT id, brand, model, base_price_cents FROM vehicle_types WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, typeID).
		Scan(&vt.ID, &vt.Brand, &vt.Model, &vt.BasePriceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle type %s not found", typeID)
	}
	if err != nil {
		return nil, err
	}
	return &vt, nil
}
