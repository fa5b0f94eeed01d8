package service

import (
	"context"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/repository"
)

type gateService struct {
	contractRepo repository.ContractRepository
	paymentRepo  repository.PaymentRepository
}

func NewGateService(contractRepo repository.ContractRepository, paymentRepo repository.PaymentRepository) GateService {
	return &gateService{contractRepo: contractRepo, paymentRepo: paymentRepo}
}

// ContractSatisfied reports whether the staff signature is on the rental's
// contract. A missing contract is a data fault (ErrContractNotFound), never
// treated as "not signed".
func (s *gateService) ContractSatisfied(ctx context.Context, rentalID string) (bool, error) {
	contract, err := s.contractRepo.GetByRental(ctx, rentalID)
	if err != nil {
		return false, err
	}
	return contract.SignedByStaff, nil
}

// PaymentSatisfied reports whether any payment linked to the rental has
// cleared. Payment capture itself happens out of band.
func (s *gateService) PaymentSatisfied(ctx context.Context, rentalID string) (bool, error) {
	payments, err := s.paymentRepo.ListByRental(ctx, rentalID)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.Status == domain.PaymentStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

// SignContract records the staff signature. Signing twice is a no-op; the
// flag never flips back.
func (s *gateService) SignContract(ctx context.Context, staffID, rentalID string) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !contract.SignedByStaff {
		if err := s.contractRepo.SetSignature(ctx, contract.ID, true, false); err != nil {
			return nil, err
		}
		contract.SignedByStaff = true
		logger.Info("contract signed by staff", "rental_id", rentalID, "contract_id", contract.ID, "staff_id", staffID)
	}
	return contract, nil
}

func (s *gateService) GetContract(ctx context.Context, rentalID string) (*domain.Contract, error) {
	return s.contractRepo.GetByRental(ctx, rentalID)
}

func (s *gateService) ListPayments(ctx context.Context, rentalID string) ([]domain.Payment, error) {
	return s.paymentRepo.ListByRental(ctx, rentalID)
}

// MarkPaymentPaid flips a payment to PAID. Called by the payment provider
// webhook; repeat deliveries are harmless.
func (s *gateService) MarkPaymentPaid(ctx context.Context, paymentID string) error {
	if err := s.paymentRepo.SetStatus(ctx, paymentID, domain.PaymentStatusPaid); err != nil {
		return err
	}
	logger.Info("payment captured", "payment_id", paymentID)
	return nil
}
