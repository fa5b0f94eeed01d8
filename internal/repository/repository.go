package repository

import (
	"context"
	"time"

	"ev-rental-backend/internal/domain"
)

// RentalOrderRepository is the order store. UpdateStatus is a conditional
// update keyed on the expected prior status: it reports false when the row
// was not in that status, which is how lost races surface.
type RentalOrderRepository interface {
	Create(ctx context.Context, order *domain.RentalOrder) error
	CreateDetail(ctx context.Context, detail *domain.RentalOrderDetail) error
	GetByID(ctx context.Context, id string) (*domain.RentalOrder, error)
	GetDetails(ctx context.Context, rentalID string) ([]domain.RentalOrderDetail, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.RentalStatus) (bool, error)
	// UpdateStatusWithReason writes the cancel or reject reason in the same
	// conditional update, depending on the target status.
	UpdateStatusWithReason(ctx context.Context, id string, from, to domain.RentalStatus, reason string) (bool, error)
	ListByRenter(ctx context.Context, renterID string, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	// ListActivePastEnd returns ACTIVE orders whose scheduled end is before
	// the given instant. Used by the overdue-reminder job; read-only.
	ListActivePastEnd(ctx context.Context, before time.Time) ([]domain.RentalOrder, error)
}

type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByRental(ctx context.Context, rentalID string) (*domain.Contract, error)
	// SetSignature ORs the flags into the row: signing is idempotent and a
	// signature can never be revoked through this path.
	SetSignature(ctx context.Context, contractID string, signedByStaff, signedByRenter bool) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByRental(ctx context.Context, rentalID string) ([]domain.Payment, error)
	SetStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

// InspectionRepository owns the append-only check-in/check-out history. The
// two transactional methods insert the record and flip the order status in a
// single database transaction; they report false — and leave nothing behind —
// when the order was not in the expected source status.
type InspectionRepository interface {
	CreateCheckinAndActivate(ctx context.Context, rec *domain.CheckinRecord, rentalID, staffID string) (bool, error)
	CreateCheckoutAndComplete(ctx context.Context, rec *domain.CheckoutRecord, rentalID string, actualCostCents int64, endTime time.Time) (bool, error)
	GetCheckinByDetail(ctx context.Context, detailID string) (*domain.CheckinRecord, error)
	GetCheckoutByDetail(ctx context.Context, detailID string) (*domain.CheckoutRecord, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	GetByRental(ctx context.Context, rentalID string) (*domain.Feedback, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetTypeByID(ctx context.Context, typeID string) (*domain.VehicleType, error)
}

type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PhotoRepository interface {
	CreatePending(ctx context.Context, photo *domain.PendingPhoto) error
	ListExpired(ctx context.Context, before time.Time) ([]domain.PendingPhoto, error)
	DeletePending(ctx context.Context, id string) error
}
