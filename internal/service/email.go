package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"ev-rental-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.Debug("email sent", "to", to, "subject", subject)
	return nil
}

func (s *emailService) SendBookingCreated(ctx context.Context, to, renterName, vehicleName string, estimatedCents, depositCents int64) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking for %s has been received.\n\nEstimated cost: %d\nRequired deposit (150%%): %d\n\nThe deposit must be paid before pickup. The surplus over the final cost is refunded after return.",
		renterName, vehicleName, estimatedCents, depositCents)
	return s.send(to, renterName, "Booking received", body)
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, to, renterName, vehicleName string, start, end time.Time) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking for %s is confirmed.\n\nPickup: %s\nReturn: %s\n\nPlease bring your driving licence to the pickup branch.",
		renterName, vehicleName, start.Format(time.RFC1123), end.Format(time.RFC1123))
	return s.send(to, renterName, "Booking confirmed", body)
}

func (s *emailService) SendHandoverCompleted(ctx context.Context, to, renterName, vehicleName string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n%s has been handed over to you. Your rental is now active.\n\nSafe travels!",
		renterName, vehicleName)
	return s.send(to, renterName, "Vehicle handed over", body)
}

func (s *emailService) SendReturnCompleted(ctx context.Context, to, renterName, vehicleName string, lateFeeCents, extraFeeCents, actualCostCents int64) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n%s has been returned and your rental is complete.\n\nLate fee: %d\nTotal extra fees: %d\nFinal cost: %d\n\nYour deposit will be settled against the final cost.",
		renterName, vehicleName, lateFeeCents, extraFeeCents, actualCostCents)
	return s.send(to, renterName, "Rental completed", body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, to, renterName, vehicleName string, scheduledEnd time.Time) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s was scheduled to end at %s. A late fee accrues for every started hour past that time.\n\nPlease return the vehicle to the branch as soon as possible.",
		renterName, vehicleName, scheduledEnd.Format(time.RFC1123))
	return s.send(to, renterName, "Rental overdue", body)
}
