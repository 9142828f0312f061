package booking

import (
	"context"
	"fmt"
	"time"

	"ingcap/config"
	"ingcap/metrics"
	"ingcap/models"
	"ingcap/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	messageSent  = "Booking request sent successfully! You will receive a confirmation email shortly and we will contact you within 24 hours to confirm your appointment."
	messageSaved = "Booking request received and saved. You will be contacted shortly to confirm your appointment."
)

// Submit stores the booking before anything else. Once the insert succeeded the
// caller always gets Success=true; email delivery only changes the message and
// the stored status.
func (s *DefaultBookingService) Submit(ctx context.Context, req models.BookingRequest) (*models.SubmissionResult, error) {
	b := &models.Booking{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Date:      req.Date,
		Time:      req.Time,
		Timestamp: s.now().UTC(),
		Status:    models.StatusSaved,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		metrics.IncBookingStoreFailed()
		s.logger.Error("Submit: failed to store booking",
			zap.String("bookingID", b.ID),
			zap.String("date", b.Date),
			zap.Error(err),
		)
		return nil, &PersistenceError{Op: "create", BookingID: b.ID, Err: err}
	}
	metrics.IncBookingStored()
	s.logger.Info("Submit: booking stored",
		zap.String("bookingID", b.ID),
		zap.String("date", b.Date),
		zap.String("time", b.Time),
	)
	s.invalidateSlots(ctx, b.Date)

	sent := s.notify(ctx, b)

	result := &models.SubmissionResult{
		Success:   true,
		Message:   messageSaved,
		BookingID: b.ID,
		EmailSent: sent,
		Fallback:  !sent,
	}
	if sent {
		result.Message = messageSent
	}
	return result, nil
}

// notify sends the business and client emails and records the outcome on the
// booking. It never fails the submission.
func (s *DefaultBookingService) notify(ctx context.Context, b *models.Booking) bool {
	if s.notifications != config.NotificationsEnabled {
		metrics.IncNotificationSkipped()
		s.logger.Debug("notify: email not configured, skipping", zap.String("bookingID", b.ID))
		return false
	}

	// The booking is already stored; a client hanging up must not abort delivery
	// or leave the status unrecorded.
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	err := s.sendBookingEmails(ctx, b)
	metrics.ObserveNotification(time.Since(start))

	if err != nil {
		kind := notification.KindOf(err)
		metrics.IncNotificationFailed(string(kind))
		s.logger.Warn("notify: booking emails failed",
			zap.String("bookingID", b.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		s.recordDelivery(ctx, b.ID, models.DeliveryUpdate{
			Status:     models.StatusEmailFailed,
			EmailError: err.Error(),
		})
		return false
	}

	metrics.IncNotificationSent()
	sentAt := s.now().UTC()
	s.recordDelivery(ctx, b.ID, models.DeliveryUpdate{
		Status:        models.StatusEmailsSent,
		EmailSentTime: &sentAt,
		Recipients:    []string{s.businessEmail, b.Email},
	})
	return true
}

func (s *DefaultBookingService) sendBookingEmails(ctx context.Context, b *models.Booking) error {
	business, err := notification.BusinessNotification(*b, s.businessEmail)
	if err != nil {
		return fmt.Errorf("failed to build business email: %w", err)
	}
	client, err := notification.ClientConfirmation(*b, s.businessEmail)
	if err != nil {
		return fmt.Errorf("failed to build client email: %w", err)
	}
	return s.mailer.Send(ctx, business, client)
}

// recordDelivery applies the single post-send status update. A failure here is
// logged only: the booking itself is already durable.
func (s *DefaultBookingService) recordDelivery(ctx context.Context, id string, update models.DeliveryUpdate) {
	if err := s.repo.UpdateDelivery(ctx, id, update); err != nil {
		s.logger.Error("recordDelivery: failed to update booking status",
			zap.String("bookingID", id),
			zap.String("status", string(update.Status)),
			zap.Error(err),
		)
	}
}
