package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ev-rental-backend/internal/domain"
)

// MockRentalOrderRepo
type MockRentalOrderRepo struct {
	mock.Mock
}

func (m *MockRentalOrderRepo) Create(ctx context.Context, order *domain.RentalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockRentalOrderRepo) CreateDetail(ctx context.Context, detail *domain.RentalOrderDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}
func (m *MockRentalOrderRepo) GetByID(ctx context.Context, id string) (*domain.RentalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalOrder), args.Error(1)
}
func (m *MockRentalOrderRepo) GetDetails(ctx context.Context, rentalID string) ([]domain.RentalOrderDetail, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalOrderDetail), args.Error(1)
}
func (m *MockRentalOrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.RentalStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalOrderRepo) UpdateStatusWithReason(ctx context.Context, id string, from, to domain.RentalStatus, reason string) (bool, error) {
	args := m.Called(ctx, id, from, to, reason)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalOrderRepo) ListByRenter(ctx context.Context, renterID string, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.RentalOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalOrderRepo) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.RentalOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalOrderRepo) ListActivePastEnd(ctx context.Context, before time.Time) ([]domain.RentalOrder, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.RentalOrder), args.Error(1)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}
func (m *MockContractRepo) GetByRental(ctx context.Context, rentalID string) (*domain.Contract, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) SetSignature(ctx context.Context, contractID string, signedByStaff, signedByRenter bool) error {
	args := m.Called(ctx, contractID, signedByStaff, signedByRenter)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID string) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SetStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockInspectionRepo
type MockInspectionRepo struct {
	mock.Mock
}

func (m *MockInspectionRepo) CreateCheckinAndActivate(ctx context.Context, rec *domain.CheckinRecord, rentalID, staffID string) (bool, error) {
	args := m.Called(ctx, rec, rentalID, staffID)
	return args.Bool(0), args.Error(1)
}
func (m *MockInspectionRepo) CreateCheckoutAndComplete(ctx context.Context, rec *domain.CheckoutRecord, rentalID string, actualCostCents int64, endTime time.Time) (bool, error) {
	args := m.Called(ctx, rec, rentalID, actualCostCents, endTime)
	return args.Bool(0), args.Error(1)
}
func (m *MockInspectionRepo) GetCheckinByDetail(ctx context.Context, detailID string) (*domain.CheckinRecord, error) {
	args := m.Called(ctx, detailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckinRecord), args.Error(1)
}
func (m *MockInspectionRepo) GetCheckoutByDetail(ctx context.Context, detailID string) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, detailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}

// MockFeedbackRepo
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}
func (m *MockFeedbackRepo) GetByRental(ctx context.Context, rentalID string) (*domain.Feedback, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetTypeByID(ctx context.Context, typeID string) (*domain.VehicleType, error) {
	args := m.Called(ctx, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleType), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCreated(ctx context.Context, to, renterName, vehicleName string, estimatedCents, depositCents int64) error {
	args := m.Called(ctx, to, renterName, vehicleName, estimatedCents, depositCents)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, to, renterName, vehicleName string, start, end time.Time) error {
	args := m.Called(ctx, to, renterName, vehicleName, start, end)
	return args.Error(0)
}
func (m *MockEmailService) SendHandoverCompleted(ctx context.Context, to, renterName, vehicleName string) error {
	args := m.Called(ctx, to, renterName, vehicleName)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnCompleted(ctx context.Context, to, renterName, vehicleName string, lateFeeCents, extraFeeCents, actualCostCents int64) error {
	args := m.Called(ctx, to, renterName, vehicleName, lateFeeCents, extraFeeCents, actualCostCents)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, to, renterName, vehicleName string, scheduledEnd time.Time) error {
	args := m.Called(ctx, to, renterName, vehicleName, scheduledEnd)
	return args.Error(0)
}
