package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/repository"
	"ev-rental-backend/internal/utils"
)

type rentalService struct {
	orderRepo    repository.RentalOrderRepository
	contractRepo repository.ContractRepository
	paymentRepo  repository.PaymentRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	emailSvc     EmailService
}

func NewRentalService(
	orderRepo repository.RentalOrderRepository,
	contractRepo repository.ContractRepository,
	paymentRepo repository.PaymentRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		orderRepo:    orderRepo,
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		emailSvc:     emailSvc,
	}
}

// CreateBooking prices the requested window and persists the PENDING order
// together with its detail row, an unsigned contract and a PENDING deposit
// payment. An invalid duration blocks submission before anything is written.
func (s *rentalService) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.RentalOrder, *utils.Quote, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	vtype, err := s.vehicleRepo.GetTypeByID(ctx, vehicle.TypeID)
	if err != nil {
		return nil, nil, err
	}

	quote, err := utils.RentalQuote(in.StartTime, in.EndTime, vtype.BasePriceCents)
	if err != nil {
		return nil, nil, err
	}

	order := &domain.RentalOrder{
		ID:                 uuid.NewString(),
		RenterID:           in.RenterID,
		VehicleID:          in.VehicleID,
		BranchStartID:      in.BranchStartID,
		BranchEndID:        in.BranchEndID,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		EstimatedCostCents: quote.EstimatedCostCents,
		DepositCents:       quote.DepositCents,
		Status:             domain.RentalStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("create rental order: %w", err)
	}

	detail := &domain.RentalOrderDetail{
		ID:        uuid.NewString(),
		RentalID:  order.ID,
		VehicleID: in.VehicleID,
	}
	if err := s.orderRepo.CreateDetail(ctx, detail); err != nil {
		return nil, nil, fmt.Errorf("create rental order detail: %w", err)
	}

	contract := &domain.Contract{
		ID:       uuid.NewString(),
		RentalID: order.ID,
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, nil, fmt.Errorf("create contract: %w", err)
	}

	deposit := &domain.Payment{
		ID:          uuid.NewString(),
		RentalID:    order.ID,
		AmountCents: quote.DepositCents,
		Method:      in.PaymentMethod,
		Status:      domain.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, deposit); err != nil {
		return nil, nil, fmt.Errorf("create deposit payment: %w", err)
	}

	if renter, err := s.userRepo.GetByID(ctx, in.RenterID); err == nil {
		name := fmt.Sprintf("%s %s", vtype.Brand, vtype.Model)
		if err := s.emailSvc.SendBookingCreated(ctx, renter.Email, renter.Name, name, quote.EstimatedCostCents, quote.DepositCents); err != nil {
			logger.Warn("booking email failed", "rental_id", order.ID, "error", err)
		}
	}

	return order, &quote, nil
}

func (s *rentalService) Confirm(ctx context.Context, staffID, rentalID string) (*domain.RentalOrder, error) {
	order, err := s.transition(ctx, rentalID, domain.RentalStatusPending, domain.RentalStatusConfirmed, "")
	if err != nil {
		return nil, err
	}
	s.notifyConfirmed(ctx, order)
	logger.Info("rental confirmed", "rental_id", rentalID, "staff_id", staffID)
	return order, nil
}

// Cancel is renter-initiated and only possible before the vehicle leaves the
// branch; once ACTIVE the order must go through the return workflow instead.
func (s *rentalService) Cancel(ctx context.Context, renterID, rentalID, reason string) (*domain.RentalOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if order.RenterID != renterID {
		return nil, fmt.Errorf("cancel rental %s: %w", rentalID, domain.ErrNotOwner)
	}
	if order.Status != domain.RentalStatusPending && order.Status != domain.RentalStatusConfirmed {
		return nil, domain.ErrInvalidStateTransition
	}
	return s.transition(ctx, rentalID, order.Status, domain.RentalStatusCancelled, reason)
}

func (s *rentalService) Reject(ctx context.Context, staffID, rentalID, reason string) (*domain.RentalOrder, error) {
	order, err := s.transition(ctx, rentalID, domain.RentalStatusPending, domain.RentalStatusRejected, reason)
	if err != nil {
		return nil, err
	}
	logger.Info("rental rejected", "rental_id", rentalID, "staff_id", staffID)
	return order, nil
}

func (s *rentalService) Close(ctx context.Context, adminID, rentalID string) (*domain.RentalOrder, error) {
	order, err := s.transition(ctx, rentalID, domain.RentalStatusCompleted, domain.RentalStatusClosed, "")
	if err != nil {
		return nil, err
	}
	logger.Info("rental closed", "rental_id", rentalID, "admin_id", adminID)
	return order, nil
}

// transition applies one state-table edge through a conditional update and
// re-reads the row. A zero-row update is reported as an invalid transition,
// which also covers the lost-race case.
func (s *rentalService) transition(ctx context.Context, rentalID string, from, to domain.RentalStatus, reason string) (*domain.RentalOrder, error) {
	if !domain.CanTransition(from, to) {
		return nil, domain.ErrInvalidStateTransition
	}

	var moved bool
	var err error
	if reason != "" {
		moved, err = s.orderRepo.UpdateStatusWithReason(ctx, rentalID, from, to, reason)
	} else {
		moved, err = s.orderRepo.UpdateStatus(ctx, rentalID, from, to)
	}
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrInvalidStateTransition
	}
	return s.orderRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) notifyConfirmed(ctx context.Context, order *domain.RentalOrder) {
	renter, err := s.userRepo.GetByID(ctx, order.RenterID)
	if err != nil {
		return
	}
	name := s.vehicleName(ctx, order.VehicleID)
	if err := s.emailSvc.SendBookingConfirmed(ctx, renter.Email, renter.Name, name, order.StartTime, order.EndTime); err != nil {
		logger.Warn("confirmation email failed", "rental_id", order.ID, "error", err)
	}
}

func (s *rentalService) vehicleName(ctx context.Context, vehicleID string) string {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return vehicleID
	}
	vtype, err := s.vehicleRepo.GetTypeByID(ctx, vehicle.TypeID)
	if err != nil {
		return vehicle.LicensePlate
	}
	return fmt.Sprintf("%s %s (%s)", vtype.Brand, vtype.Model, vehicle.LicensePlate)
}

func (s *rentalService) Get(ctx context.Context, rentalID string) (*domain.RentalOrder, error) {
	return s.orderRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return s.orderRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *rentalService) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return s.orderRepo.ListByStatus(ctx, status, page, pageSize)
}
