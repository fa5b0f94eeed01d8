package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/repository"
)

type handoverService struct {
	orderRepo      repository.RentalOrderRepository
	inspectionRepo repository.InspectionRepository
	vehicleRepo    repository.VehicleRepository
	userRepo       repository.UserRepository
	gates          GateService
	emailSvc       EmailService
}

func NewHandoverService(
	orderRepo repository.RentalOrderRepository,
	inspectionRepo repository.InspectionRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	gates GateService,
	emailSvc EmailService,
) HandoverService {
	return &handoverService{
		orderRepo:      orderRepo,
		inspectionRepo: inspectionRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		gates:          gates,
		emailSvc:       emailSvc,
	}
}

// SubmitCheckin releases the vehicle to the renter. Precondition order:
// detail record, checklist, odometer/battery, contract gate, payment gate —
// then one transaction appends the check-in record and flips the order
// CONFIRMED -> ACTIVE. Of N concurrent submissions exactly one commits; the
// rest observe ErrInvalidStateTransition.
func (s *handoverService) SubmitCheckin(ctx context.Context, staffID, rentalID string, in CheckinInput) (*domain.CheckinRecord, error) {
	order, err := s.orderRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.RentalStatusConfirmed {
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

	// Gates are evaluated here, not at screen load: signing and payment
	// capture may have completed out of band either way.
	signed, err := s.gates.ContractSatisfied(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !signed {
		return nil, &domain.GateUnsatisfiedError{Gate: domain.GateContract}
	}
	paid, err := s.gates.PaymentSatisfied(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, &domain.GateUnsatisfiedError{Gate: domain.GatePayment}
	}

	rec := &domain.CheckinRecord{
		ID:           uuid.NewString(),
		DetailID:     detail.ID,
		StaffID:      staffID,
		OdometerKm:   *in.OdometerKm,
		BatteryLevel: *in.BatteryLevel,
		Note:         in.Note,
		Photos:       in.Photos,
	}
	activated, err := s.inspectionRepo.CreateCheckinAndActivate(ctx, rec, rentalID, staffID)
	if err != nil {
		return nil, fmt.Errorf("record check-in: %w", err)
	}
	if !activated {
		return nil, domain.ErrInvalidStateTransition
	}

	logger.Info("vehicle handed over", "rental_id", rentalID, "staff_id", staffID,
		"odometer_km", rec.OdometerKm, "battery_level", rec.BatteryLevel)
	s.notifyHandover(ctx, order)
	return rec, nil
}

func (s *handoverService) notifyHandover(ctx context.Context, order *domain.RentalOrder) {
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
	if err := s.emailSvc.SendHandoverCompleted(ctx, renter.Email, renter.Name, name); err != nil {
		logger.Warn("handover email failed", "rental_id", order.ID, "error", err)
	}
}

func validateReadings(odometerKm *int64, batteryLevel *int) error {
	if odometerKm == nil {
		return &domain.ValidationError{Field: "odometer_km", Reason: "reading is required"}
	}
	if *odometerKm < 0 {
		return &domain.ValidationError{Field: "odometer_km", Reason: "reading cannot be negative"}
	}
	if batteryLevel == nil {
		return &domain.ValidationError{Field: "battery_level", Reason: "reading is required"}
	}
	if *batteryLevel < 0 || *batteryLevel > 100 {
		return &domain.ValidationError{Field: "battery_level", Reason: "must be between 0 and 100"}
	}
	return nil
}
