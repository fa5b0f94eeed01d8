package postgres

import (
	"database/sql"

	"ev-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RentalOrderRepository
	repository.ContractRepository
	repository.PaymentRepository
	repository.InspectionRepository
	repository.FeedbackRepository
	repository.VehicleRepository
	repository.BranchRepository
	repository.UserRepository
	repository.PhotoRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		RentalOrderRepository: NewRentalOrderRepository(db),
		ContractRepository:    NewContractRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		InspectionRepository:  NewInspectionRepository(db),
		FeedbackRepository:    NewFeedbackRepository(db),
		VehicleRepository:     NewVehicleRepository(db),
		BranchRepository:      NewBranchRepository(db),
		UserRepository:        NewUserRepository(db),
		PhotoRepository:       NewPhotoRepository(db),
	}
}
