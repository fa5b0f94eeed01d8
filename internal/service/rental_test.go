package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/service"
)

type rentalFixture struct {
	orderRepo    *MockRentalOrderRepo
	contractRepo *MockContractRepo
	paymentRepo  *MockPaymentRepo
	vehicleRepo  *MockVehicleRepo
	userRepo     *MockUserRepo
	emailSvc     *MockEmailService
	svc          service.RentalService
}

func newRentalFixture() *rentalFixture {
	f := &rentalFixture{
		orderRepo:    new(MockRentalOrderRepo),
		contractRepo: new(MockContractRepo),
		paymentRepo:  new(MockPaymentRepo),
		vehicleRepo:  new(MockVehicleRepo),
		userRepo:     new(MockUserRepo),
		emailSvc:     new(MockEmailService),
	}
	f.svc = service.NewRentalService(f.orderRepo, f.contractRepo, f.paymentRepo, f.vehicleRepo, f.userRepo, f.emailSvc)
	return f
}

func TestRentalService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	input := service.CreateBookingInput{
		RenterID:      "renter-1",
		VehicleID:     "vehicle-1",
		BranchStartID: "branch-1",
		BranchEndID:   "branch-2",
		StartTime:     start,
		EndTime:       start.Add(26 * time.Hour),
		PaymentMethod: "card",
	}

	t.Run("Success", func(t *testing.T) {
		f := newRentalFixture()
		f.vehicleRepo.On("GetByID", ctx, "vehicle-1").Return(&domain.Vehicle{ID: "vehicle-1", TypeID: "type-1", LicensePlate: "EV-001"}, nil)
		f.vehicleRepo.On("GetTypeByID", ctx, "type-1").Return(&domain.VehicleType{ID: "type-1", Brand: "Tesla", Model: "Model 3", BasePriceCents: 300000}, nil)
		f.orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.RentalOrder")).Return(nil)
		f.orderRepo.On("CreateDetail", ctx, mock.AnythingOfType("*domain.RentalOrderDetail")).Return(nil)
		f.contractRepo.On("Create", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)
		f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		f.userRepo.On("GetByID", ctx, "renter-1").Return(&domain.User{ID: "renter-1", Email: "renter@test.com", Name: "Renter"}, nil)
		f.emailSvc.On("SendBookingCreated", ctx, "renter@test.com", "Renter", "Tesla Model 3", int64(600000), int64(900000)).Return(nil)

		order, quote, err := f.svc.CreateBooking(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPending, order.Status)
		assert.Equal(t, int64(600000), order.EstimatedCostCents)
		assert.Equal(t, int64(900000), order.DepositCents)
		assert.Nil(t, order.ActualCostCents)
		assert.Equal(t, int64(2), quote.BillableDays)
		f.orderRepo.AssertExpectations(t)
		f.contractRepo.AssertExpectations(t)
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("Invalid duration blocks submission", func(t *testing.T) {
		f := newRentalFixture()
		f.vehicleRepo.On("GetByID", ctx, "vehicle-1").Return(&domain.Vehicle{ID: "vehicle-1", TypeID: "type-1"}, nil)
		f.vehicleRepo.On("GetTypeByID", ctx, "type-1").Return(&domain.VehicleType{ID: "type-1", BasePriceCents: 300000}, nil)

		bad := input
		bad.EndTime = bad.StartTime
		_, _, err := f.svc.CreateBooking(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
		f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRentalService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirm pending order", func(t *testing.T) {
		f := newRentalFixture()
		confirmed := confirmedOrder("rental-1")
		f.orderRepo.On("UpdateStatus", ctx, "rental-1", domain.RentalStatusPending, domain.RentalStatusConfirmed).Return(true, nil)
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmed, nil)
		f.userRepo.On("GetByID", ctx, "renter-1").Return(&domain.User{ID: "renter-1", Email: "renter@test.com", Name: "Renter"}, nil)
		f.vehicleRepo.On("GetByID", ctx, "vehicle-1").Return(&domain.Vehicle{ID: "vehicle-1", TypeID: "type-1", LicensePlate: "EV-001"}, nil)
		f.vehicleRepo.On("GetTypeByID", ctx, "type-1").Return(&domain.VehicleType{ID: "type-1", Brand: "Tesla", Model: "Model 3"}, nil)
		f.emailSvc.On("SendBookingConfirmed", ctx, "renter@test.com", "Renter", "Tesla Model 3 (EV-001)", confirmed.StartTime, confirmed.EndTime).Return(nil)

		order, err := f.svc.Confirm(ctx, "staff-1", "rental-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusConfirmed, order.Status)
	})

	t.Run("Confirm lost race", func(t *testing.T) {
		f := newRentalFixture()
		f.orderRepo.On("UpdateStatus", ctx, "rental-1", domain.RentalStatusPending, domain.RentalStatusConfirmed).Return(false, nil)

		_, err := f.svc.Confirm(ctx, "staff-1", "rental-1")
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	t.Run("Cancel confirmed order", func(t *testing.T) {
		f := newRentalFixture()
		order := confirmedOrder("rental-1")
		cancelled := confirmedOrder("rental-1")
		cancelled.Status = domain.RentalStatusCancelled
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(order, nil).Once()
		f.orderRepo.On("UpdateStatusWithReason", ctx, "rental-1", domain.RentalStatusConfirmed, domain.RentalStatusCancelled, "change of plans").Return(true, nil)
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(cancelled, nil).Once()

		result, err := f.svc.Cancel(ctx, "renter-1", "rental-1", "change of plans")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, result.Status)
	})

	t.Run("Cancel by another renter is refused", func(t *testing.T) {
		f := newRentalFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)

		_, err := f.svc.Cancel(ctx, "renter-2", "rental-1", "nope")
		assert.ErrorIs(t, err, domain.ErrNotOwner)
		f.orderRepo.AssertNotCalled(t, "UpdateStatusWithReason", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cancel after handover is impossible", func(t *testing.T) {
		f := newRentalFixture()
		order := confirmedOrder("rental-1")
		order.Status = domain.RentalStatusActive
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(order, nil)

		_, err := f.svc.Cancel(ctx, "renter-1", "rental-1", "too late")
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	t.Run("Reject pending order", func(t *testing.T) {
		f := newRentalFixture()
		rejected := confirmedOrder("rental-1")
		rejected.Status = domain.RentalStatusRejected
		rejected.RejectReason = "no vehicles available"
		f.orderRepo.On("UpdateStatusWithReason", ctx, "rental-1", domain.RentalStatusPending, domain.RentalStatusRejected, "no vehicles available").Return(true, nil)
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(rejected, nil)

		order, err := f.svc.Reject(ctx, "staff-1", "rental-1", "no vehicles available")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusRejected, order.Status)
	})

	t.Run("Close completed order", func(t *testing.T) {
		f := newRentalFixture()
		closed := confirmedOrder("rental-1")
		closed.Status = domain.RentalStatusClosed
		f.orderRepo.On("UpdateStatus", ctx, "rental-1", domain.RentalStatusCompleted, domain.RentalStatusClosed).Return(true, nil)
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(closed, nil)

		order, err := f.svc.Close(ctx, "admin-1", "rental-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusClosed, order.Status)
	})
}
