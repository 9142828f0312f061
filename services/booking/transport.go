package booking

import (
	"context"

	"ingcap/config"
	"ingcap/models"
	"ingcap/services/notification"
)

// TestEmailTransport reports whether the configured mail server accepts our
// credentials. No mail is sent.
func (s *DefaultBookingService) TestEmailTransport(ctx context.Context) models.TransportCheckResult {
	if s.notifications != config.NotificationsEnabled {
		return notification.NewDisabledMailer().Check(ctx)
	}
	return s.mailer.Check(ctx)
}
