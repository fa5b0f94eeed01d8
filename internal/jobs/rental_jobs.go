package jobs

import (
	"context"
	"fmt"
	"time"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/logger"
)

const jobTimeout = 5 * time.Minute

// SendOverdueReturnReminders emails renters whose ACTIVE rental is past its
// scheduled end. Order state is never touched here: only the return workflow
// moves an order out of ACTIVE.
func (jr *JobRunner) SendOverdueReturnReminders() {
	jr.runWithRecovery("SendOverdueReturnReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		overdue, err := jr.store.RentalOrderRepository.ListActivePastEnd(ctx, time.Now())
		if err != nil {
			logger.Error("list overdue rentals failed", "error", err)
			return
		}
		if len(overdue) == 0 {
			return
		}

		sent := 0
		for _, order := range overdue {
			if err := jr.remindRenter(ctx, &order); err != nil {
				logger.Warn("overdue reminder failed", "rental_id", order.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("overdue reminders sent", "overdue", len(overdue), "sent", sent)
	})
}

func (jr *JobRunner) remindRenter(ctx context.Context, order *domain.RentalOrder) error {
	renter, err := jr.store.UserRepository.GetByID(ctx, order.RenterID)
	if err != nil {
		return err
	}

	name := order.VehicleID
	if vehicle, err := jr.store.VehicleRepository.GetByID(ctx, order.VehicleID); err == nil {
		if vtype, err := jr.store.VehicleRepository.GetTypeByID(ctx, vehicle.TypeID); err == nil {
			name = fmt.Sprintf("%s %s (%s)", vtype.Brand, vtype.Model, vehicle.LicensePlate)
		}
	}
	return jr.services.Email.SendOverdueReminder(ctx, renter.Email, renter.Name, name, order.EndTime)
}

// CleanupExpiredPhotos reaps pending photo uploads whose presigned URLs were
// never followed through.
func (jr *JobRunner) CleanupExpiredPhotos() {
	jr.runWithRecovery("CleanupExpiredPhotos", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		removed, err := jr.services.Photo.CleanupExpired(ctx)
		if err != nil {
			logger.Error("photo cleanup failed", "error", err)
			return
		}
		logger.Info("expired photos cleaned up", "removed", removed)
	})
}
