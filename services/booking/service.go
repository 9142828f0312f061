package booking

import (
	"errors"
	"strings"
	"time"

	"ingcap/config"
	bookingRepo "ingcap/database/repository/booking"
	"ingcap/services/notification"

	"go.uber.org/zap"
)

// listLimit caps GET /api/bookings.
const listLimit = 100

// Deps are the collaborators of DefaultBookingService. Repo is required; the
// remaining fields fall back to disabled or no-op implementations.
type Deps struct {
	Repo          bookingRepo.BookingRepository
	Mailer        notification.Mailer
	Notifications config.NotificationMode
	BusinessEmail string
	SlotCache     SlotCache
	Logger        *zap.Logger
	Now           func() time.Time
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	repo          bookingRepo.BookingRepository
	mailer        notification.Mailer
	notifications config.NotificationMode
	businessEmail string
	slots         SlotCache
	logger        *zap.Logger
	now           func() time.Time
}

func NewBookingService(d Deps) (*DefaultBookingService, error) {
	if d.Repo == nil {
		return nil, errors.New("booking service initialization error: repository is nil")
	}
	if d.Notifications == config.NotificationsEnabled {
		if d.Mailer == nil {
			return nil, errors.New("booking service initialization error: notifications enabled without a mailer")
		}
		if strings.TrimSpace(d.BusinessEmail) == "" {
			return nil, errors.New("booking service initialization error: notifications enabled without a business address")
		}
	}
	if d.Mailer == nil {
		d.Mailer = notification.NewDisabledMailer()
	}
	if d.SlotCache == nil {
		d.SlotCache = noopSlotCache{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	return &DefaultBookingService{
		repo:          d.Repo,
		mailer:        d.Mailer,
		notifications: d.Notifications,
		businessEmail: d.BusinessEmail,
		slots:         d.SlotCache,
		logger:        d.Logger,
		now:           d.Now,
	}, nil
}
