package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/repository"
	"ev-rental-backend/internal/utils"
)

type returnService struct {
	orderRepo           repository.RentalOrderRepository
	inspectionRepo      repository.InspectionRepository
	vehicleRepo         repository.VehicleRepository
	userRepo            repository.UserRepository
	emailSvc            EmailService
	lateFeePerHourCents int64
}

func NewReturnService(
	orderRepo repository.RentalOrderRepository,
	inspectionRepo repository.InspectionRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	lateFeePerHourCents int64,
) ReturnService {
	return &returnService{
		orderRepo:           orderRepo,
		inspectionRepo:      inspectionRepo,
		vehicleRepo:         vehicleRepo,
		userRepo:            userRepo,
		emailSvc:            emailSvc,
		lateFeePerHourCents: lateFeePerHourCents,
	}
}

// QuoteCheckout previews the late fee for a return at the given instant.
func (s *returnService) QuoteCheckout(ctx context.Context, rentalID string, at time.Time) (*CheckoutQuote, error) {
	order, err := s.orderRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.RentalStatusActive {
		return nil, domain.ErrInvalidStateTransition
	}
	if at.IsZero() {
		at = time.Now()
	}

	quote := &CheckoutQuote{
		LateFeeCents:       utils.LateFee(order.EndTime, at, s.lateFeePerHourCents),
		EstimatedCostCents: order.EstimatedCostCents,
	}
	if late := at.Sub(order.EndTime).Hours(); late > 0 {
		quote.HoursLate = int64(math.Ceil(late))
	}
	return quote, nil
}

// SubmitCheckout recovers the vehicle and settles the order: late fee plus
// any manually assessed charge on top of the estimated cost. One transaction
// appends the check-out record and flips ACTIVE -> COMPLETED; a lost race
// surfaces as ErrInvalidStateTransition.
func (s *returnService) SubmitCheckout(ctx context.Context, staffID, rentalID string, in CheckoutInput) (*domain.CheckoutRecord, error) {
	order, err := s.orderRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.RentalStatusActive {
		return nil, domain.ErrInvalidStateTransition
	}

	details, err := s.orderRepo.GetDetails(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, domain.ErrDetailNotFound
	}
	detail := details[0]

	if !in.Checklist.Complete() {
		return nil, &domain.ValidationError{Field: "checklist", Reason: "all inspection items must be confirmed"}
	}
	if err := validateReadings(in.OdometerKm, in.BatteryLevel); err != nil {
		return nil, err
	}
	if in.AdditionalFeeCents < 0 {
		return nil, &domain.ValidationError{Field: "additional_fee_cents", Reason: "cannot be negative"}
	}
	if in.AdditionalFeeCents > 0 && in.FeeJustification == "" {
		return nil, &domain.ValidationError{Field: "fee_justification", Reason: "required when an additional fee is charged"}
	}

	returnedAt := in.ReturnedAt
	if returnedAt.IsZero() {
		returnedAt = time.Now()
	}
	lateFee := utils.LateFee(order.EndTime, returnedAt, s.lateFeePerHourCents)
	extraFee := lateFee + in.AdditionalFeeCents
	actualCost := order.EstimatedCostCents + extraFee

	note := in.Note
	if in.FeeJustification != "" {
		note = fmt.Sprintf("%s [fee justification: %s]", note, in.FeeJustification)
	}

	rec := &domain.CheckoutRecord{
		ID:            uuid.NewString(),
		DetailID:      detail.ID,
		StaffID:       staffID,
		OdometerKm:    *in.OdometerKm,
		BatteryLevel:  *in.BatteryLevel,
		LateFeeCents:  lateFee,
		ExtraFeeCents: extraFee,
		Note:          note,
		Photos:        in.Photos,
	}
	completed, err := s.inspectionRepo.CreateCheckoutAndComplete(ctx, rec, rentalID, actualCost, returnedAt)
	if err != nil {
		return nil, fmt.Errorf("record check-out: %w", err)
	}
	if !completed {
		return nil, domain.ErrInvalidStateTransition
	}

	logger.Info("vehicle returned", "rental_id", rentalID, "staff_id", staffID,
		"late_fee_cents", lateFee, "extra_fee_cents", extraFee, "actual_cost_cents", actualCost)
	s.notifyReturn(ctx, order, lateFee, extraFee, actualCost)
	return rec, nil
}

func (s *returnService) notifyReturn(ctx context.Context, order *domain.RentalOrder, lateFee, extraFee, actualCost int64) {
	renter, err := s.userRepo.GetByID(ctx, order.RenterID)
	if err != nil {
		return
	}
	name := order.VehicleID
	if vehicle, err := s.vehicleRepo.GetByID(ctx, order.VehicleID); err == nil {
		if vtype, err := s.vehicleRepo.GetTypeByID(ctx, vehicle.TypeID); err == nil {
			name = fmt.Sprintf("%s %s (%s)", vtype.Brand, vtype.Model, vehicle.LicensePlate)
		}
	}
	if err := s.emailSvc.SendReturnCompleted(ctx, renter.Email, renter.Name, name, lateFee, extraFee, actualCost); err != nil {
		logger.Warn("return email failed", "rental_id", order.ID, "error", err)
	}
}
