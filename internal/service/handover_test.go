package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/service"
)

type handoverFixture struct {
	orderRepo      *MockRentalOrderRepo
	inspectionRepo *MockInspectionRepo
	contractRepo   *MockContractRepo
	paymentRepo    *MockPaymentRepo
	vehicleRepo    *MockVehicleRepo
	userRepo       *MockUserRepo
	emailSvc       *MockEmailService
	svc            service.HandoverService
}

func newHandoverFixture() *handoverFixture {
	f := &handoverFixture{
		orderRepo:      new(MockRentalOrderRepo),
		inspectionRepo: new(MockInspectionRepo),
		contractRepo:   new(MockContractRepo),
		paymentRepo:    new(MockPaymentRepo),
		vehicleRepo:    new(MockVehicleRepo),
		userRepo:       new(MockUserRepo),
		emailSvc:       new(MockEmailService),
	}
	gates := service.NewGateService(f.contractRepo, f.paymentRepo)
	f.svc = service.NewHandoverService(f.orderRepo, f.inspectionRepo, f.vehicleRepo, f.userRepo, gates, f.emailSvc)
	return f
}

func completeCheckinInput() service.CheckinInput {
	odometer := int64(12000)
	battery := 95
	return service.CheckinInput{
		Checklist: domain.CheckinChecklist{
			Exterior: true, Interior: true, BatteryMotor: true, Documents: true, PhotosTaken: true,
		},
		OdometerKm:   &odometer,
		BatteryLevel: &battery,
	}
}

func confirmedOrder(id string) *domain.RentalOrder {
	return &domain.RentalOrder{
		ID:        id,
		RenterID:  "renter-1",
		VehicleID: "vehicle-1",
		Status:    domain.RentalStatusConfirmed,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(48 * time.Hour),
	}
}

func signedContract(rentalID string) *domain.Contract {
	return &domain.Contract{ID: "contract-1", RentalID: rentalID, SignedByRenter: true, SignedByStaff: true}
}

func paidDeposit(rentalID string) []domain.Payment {
	return []domain.Payment{{ID: "pay-1", RentalID: rentalID, AmountCents: 900000, Status: domain.PaymentStatusPaid}}
}

func TestHandoverService_SubmitCheckin(t *testing.T) {
	ctx := context.Background()
	detail := []domain.RentalOrderDetail{{ID: "detail-1", RentalID: "rental-1", VehicleID: "vehicle-1"}}

	t.Run("Success", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return(detail, nil)
		f.contractRepo.On("GetByRental", ctx, "rental-1").Return(signedContract("rental-1"), nil)
		f.paymentRepo.On("ListByRental", ctx, "rental-1").Return(paidDeposit("rental-1"), nil)
		f.inspectionRepo.On("CreateCheckinAndActivate", ctx, mock.AnythingOfType("*domain.CheckinRecord"), "rental-1", "staff-1").Return(true, nil)
		f.userRepo.On("GetByID", ctx, "renter-1").Return(&domain.User{ID: "renter-1", Email: "renter@test.com", Name: "Renter"}, nil)
		f.vehicleRepo.On("GetByID", ctx, "vehicle-1").Return(&domain.Vehicle{ID: "vehicle-1", TypeID: "type-1", LicensePlate: "EV-001"}, nil)
		f.vehicleRepo.On("GetTypeByID", ctx, "type-1").Return(&domain.VehicleType{ID: "type-1", Brand: "Tesla", Model: "Model 3"}, nil)
		f.emailSvc.On("SendHandoverCompleted", ctx, "renter@test.com", "Renter", "Tesla Model 3 (EV-001)").Return(nil)

		rec, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", completeCheckinInput())
		assert.NoError(t, err)
		assert.NotNil(t, rec)
		assert.Equal(t, "detail-1", rec.DetailID)
		assert.Equal(t, "staff-1", rec.StaffID)
		assert.Equal(t, int64(12000), rec.OdometerKm)
		assert.Equal(t, 95, rec.BatteryLevel)
		f.inspectionRepo.AssertExpectations(t)
	})

	t.Run("Order not confirmed", func(t *testing.T) {
		f := newHandoverFixture()
		order := confirmedOrder("rental-1")
		order.Status = domain.RentalStatusPending
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(order, nil)

		rec, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", completeCheckinInput())
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		assert.Nil(t, rec)
		f.inspectionRepo.AssertNotCalled(t, "CreateCheckinAndActivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing detail record", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return([]domain.RentalOrderDetail{}, nil)

		_, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", completeCheckinInput())
		assert.ErrorIs(t, err, domain.ErrDetailNotFound)
	})

	t.Run("Incomplete checklist", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return(detail, nil)

		in := completeCheckinInput()
		in.Checklist.Documents = false
		_, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", in)

		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
		assert.Equal(t, "checklist", valErr.Field)
	})

	t.Run("Missing odometer reading", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return(detail, nil)

		in := completeCheckinInput()
		in.OdometerKm = nil
		_, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", in)

		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
		assert.Equal(t, "odometer_km", valErr.Field)
	})

	t.Run("Battery level out of range", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return(detail, nil)

		in := completeCheckinInput()
		battery := 140
		in.BatteryLevel = &battery
		_, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", in)

		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
		assert.Equal(t, "battery_level", valErr.Field)
	})

	t.Run("Unsigned contract blocks handover", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return(detail, nil)
		unsigned := signedContract("rental-1")
		unsigned.SignedByStaff = false
		f.contractRepo.On("GetByRental", ctx, "rental-1").Return(unsigned, nil)

		_, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", completeCheckinInput())

		var gateErr *domain.GateUnsatisfiedError
		assert.ErrorAs(t, err, &gateErr)
		assert.Equal(t, domain.GateContract, gateErr.Gate)
		f.inspectionRepo.AssertNotCalled(t, "CreateCheckinAndActivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Pending payment blocks handover", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return(detail, nil)
		f.contractRepo.On("GetByRental", ctx, "rental-1").Return(signedContract("rental-1"), nil)
		pending := []domain.Payment{{ID: "pay-1", RentalID: "rental-1", Status: domain.PaymentStatusPending}}
		f.paymentRepo.On("ListByRental", ctx, "rental-1").Return(pending, nil)

		_, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", completeCheckinInput())

		var gateErr *domain.GateUnsatisfiedError
		assert.ErrorAs(t, err, &gateErr)
		assert.Equal(t, domain.GatePayment, gateErr.Gate)
	})

	t.Run("Lost race surfaces as invalid transition", func(t *testing.T) {
		f := newHandoverFixture()
		f.orderRepo.On("GetByID", ctx, "rental-1").Return(confirmedOrder("rental-1"), nil)
		f.orderRepo.On("GetDetails", ctx, "rental-1").Return(detail, nil)
		f.contractRepo.On("GetByRental", ctx, "rental-1").Return(signedContract("rental-1"), nil)
		f.paymentRepo.On("ListByRental", ctx, "rental-1").Return(paidDeposit("rental-1"), nil)
		// Another submission flipped the order between the read and the write.
		f.inspectionRepo.On("CreateCheckinAndActivate", ctx, mock.AnythingOfType("*domain.CheckinRecord"), "rental-1", "staff-1").Return(false, nil)

		_, err := f.svc.SubmitCheckin(ctx, "staff-1", "rental-1", completeCheckinInput())
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})
}

// memOrderStore is an in-memory order + inspection store with the same
// conditional-update semantics as the postgres repositories, used to exercise
// concurrent submissions for real.
type memOrderStore struct {
	mu       sync.Mutex
	order    domain.RentalOrder
	details  []domain.RentalOrderDetail
	checkins int
}

func (s *memOrderStore) Create(ctx context.Context, o *domain.RentalOrder) error { return nil }
func (s *memOrderStore) CreateDetail(ctx context.Context, d *domain.RentalOrderDetail) error {
	return nil
}
func (s *memOrderStore) GetByID(ctx context.Context, id string) (*domain.RentalOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.order
	return &o, nil
}
func (s *memOrderStore) GetDetails(ctx context.Context, rentalID string) ([]domain.RentalOrderDetail, error) {
	return s.details, nil
}
func (s *memOrderStore) UpdateStatus(ctx context.Context, id string, from, to domain.RentalStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order.Status != from {
		return false, nil
	}
	s.order.Status = to
	return true, nil
}
func (s *memOrderStore) UpdateStatusWithReason(ctx context.Context, id string, from, to domain.RentalStatus, reason string) (bool, error) {
	return s.UpdateStatus(ctx, id, from, to)
}
func (s *memOrderStore) ListByRenter(ctx context.Context, renterID string, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return nil, 0, nil
}
func (s *memOrderStore) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	return nil, 0, nil
}
func (s *memOrderStore) ListActivePastEnd(ctx context.Context, before time.Time) ([]domain.RentalOrder, error) {
	return nil, nil
}

func (s *memOrderStore) CreateCheckinAndActivate(ctx context.Context, rec *domain.CheckinRecord, rentalID, staffID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order.Status != domain.RentalStatusConfirmed {
		return false, nil
	}
	s.order.Status = domain.RentalStatusActive
	s.order.StaffID = &staffID
	s.checkins++
	return true, nil
}
func (s *memOrderStore) CreateCheckoutAndComplete(ctx context.Context, rec *domain.CheckoutRecord, rentalID string, actualCostCents int64, endTime time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order.Status != domain.RentalStatusActive {
		return false, nil
	}
	s.order.Status = domain.RentalStatusCompleted
	return true, nil
}
func (s *memOrderStore) GetCheckinByDetail(ctx context.Context, detailID string) (*domain.CheckinRecord, error) {
	return nil, nil
}
func (s *memOrderStore) GetCheckoutByDetail(ctx context.Context, detailID string) (*domain.CheckoutRecord, error) {
	return nil, nil
}

func TestHandoverService_ConcurrentCheckin(t *testing.T) {
	ctx := context.Background()
	store := &memOrderStore{
		order:   *confirmedOrder("rental-1"),
		details: []domain.RentalOrderDetail{{ID: "detail-1", RentalID: "rental-1", VehicleID: "vehicle-1"}},
	}

	contractRepo := new(MockContractRepo)
	paymentRepo := new(MockPaymentRepo)
	contractRepo.On("GetByRental", ctx, "rental-1").Return(signedContract("rental-1"), nil)
	paymentRepo.On("ListByRental", ctx, "rental-1").Return(paidDeposit("rental-1"), nil)

	vehicleRepo := new(MockVehicleRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	// The winning submission looks up the renter for the notification email;
	// failing that lookup skips the email without failing the check-in.
	userRepo.On("GetByID", ctx, "renter-1").Return(nil, errors.New("user service unavailable"))

	gates := service.NewGateService(contractRepo, paymentRepo)
	svc := service.NewHandoverService(store, store, vehicleRepo, userRepo, gates, emailSvc)

	const workers = 8
	results := make(chan error, workers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < workers; i++ {
		go func() {
			start.Wait()
			_, err := svc.SubmitCheckin(ctx, "staff-1", "rental-1", completeCheckinInput())
			results <- err
		}()
	}
	start.Done()

	var succeeded, lost int
	for i := 0; i < workers; i++ {
		err := <-results
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		lost++
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent submission must win")
	assert.Equal(t, workers-1, lost)
	assert.Equal(t, 1, store.checkins, "only the winner writes a check-in record")
	assert.Equal(t, domain.RentalStatusActive, store.order.Status)
}
