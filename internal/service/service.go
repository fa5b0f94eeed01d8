package service

import (
	"context"
	"time"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/utils"
)

type CreateBookingInput struct {
	RenterID      string
	VehicleID     string
	BranchStartID string
	BranchEndID   string
	StartTime     time.Time
	EndTime       time.Time
	PaymentMethod string
}

type RentalService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.RentalOrder, *utils.Quote, error)
	Confirm(ctx context.Context, staffID, rentalID string) (*domain.RentalOrder, error)
	Cancel(ctx context.Context, renterID, rentalID, reason string) (*domain.RentalOrder, error)
	Reject(ctx context.Context, staffID, rentalID, reason string) (*domain.RentalOrder, error)
	Close(ctx context.Context, adminID, rentalID string) (*domain.RentalOrder, error)
	Get(ctx context.Context, rentalID string) (*domain.RentalOrder, error)
	ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
}

// GateService answers the two handover preconditions. Both queries hit the
// store directly so the answer is always current: contract signing and
// payment capture can complete while the handover screen is open.
type GateService interface {
	ContractSatisfied(ctx context.Context, rentalID string) (bool, error)
	PaymentSatisfied(ctx context.Context, rentalID string) (bool, error)
	SignContract(ctx context.Context, staffID, rentalID string) (*domain.Contract, error)
	GetContract(ctx context.Context, rentalID string) (*domain.Contract, error)
	ListPayments(ctx context.Context, rentalID string) ([]domain.Payment, error)
	// MarkPaymentPaid records an out-of-band payment capture, typically via
	// the payment provider's webhook.
	MarkPaymentPaid(ctx context.Context, paymentID string) error
}

type CheckinInput struct {
	Checklist    domain.CheckinChecklist
	OdometerKm   *int64
	BatteryLevel *int
	Note         string
	Photos       []domain.InspectionPhoto
}

type HandoverService interface {
	SubmitCheckin(ctx context.Context, staffID, rentalID string, in CheckinInput) (*domain.CheckinRecord, error)
}

type CheckoutInput struct {
	Checklist          domain.CheckoutChecklist
	OdometerKm         *int64
	BatteryLevel       *int
	AdditionalFeeCents int64
	FeeJustification   string
	Note               string
	Photos             []domain.InspectionPhoto
	// ReturnedAt defaults to the current time when zero.
	ReturnedAt time.Time
}

// CheckoutQuote is the fee preview shown before the return is submitted; the
// same numbers are re-derivable from the stored records afterwards.
type CheckoutQuote struct {
	HoursLate          int64 `json:"hours_late"`
	LateFeeCents       int64 `json:"late_fee_cents"`
	EstimatedCostCents int64 `json:"estimated_cost_cents"`
}

type ReturnService interface {
	QuoteCheckout(ctx context.Context, rentalID string, at time.Time) (*CheckoutQuote, error)
	SubmitCheckout(ctx context.Context, staffID, rentalID string, in CheckoutInput) (*domain.CheckoutRecord, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, renterID, rentalID string, rating int, comment string) (*domain.Feedback, error)
	GetByRental(ctx context.Context, rentalID string) (*domain.Feedback, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, error)
}

type PhotoService interface {
	RequestUpload(ctx context.Context, uploaderID, rentalID, filename, contentType string) (uploadURL, photoURL string, err error)
	CleanupExpired(ctx context.Context) (int, error)
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, to, renterName, vehicleName string, estimatedCents, depositCents int64) error
	SendBookingConfirmed(ctx context.Context, to, renterName, vehicleName string, start, end time.Time) error
	SendHandoverCompleted(ctx context.Context, to, renterName, vehicleName string) error
	SendReturnCompleted(ctx context.Context, to, renterName, vehicleName string, lateFeeCents, extraFeeCents, actualCostCents int64) error
	SendOverdueReminder(ctx context.Context, to, renterName, vehicleName string, scheduledEnd time.Time) error
}
