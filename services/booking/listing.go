package booking

import (
	"context"
	"fmt"

	"ingcap/metrics"
	"ingcap/models"
	"ingcap/utils"

	"go.uber.org/zap"
)

// ListBookings returns up to 100 bookings, newest first, formatted for display.
func (s *DefaultBookingService) ListBookings(ctx context.Context) ([]models.BookingView, error) {
	bookings, err := s.repo.ListRecent(ctx, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toView(b))
	}
	return views, nil
}

func toView(b models.Booking) models.BookingView {
	v := models.BookingView{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Company:     b.Company,
		Date:        b.Date,
		DisplayDate: utils.FormatAppointmentDate(b.Date),
		Time:        b.Time,
		Timestamp:   utils.FormatTimestamp(b.Timestamp),
		Status:      b.Status,
		EmailError:  b.EmailError,
		EmailsSent:  b.EmailsSent,
	}
	if !b.StoreID.IsZero() {
		v.StoreID = b.StoreID.Hex()
	}
	if b.EmailSentTime != nil {
		v.EmailSentTime = utils.FormatTimestamp(*b.EmailSentTime)
	}
	return v
}

// ListBookedSlots returns the time labels of every slot-holding booking on date.
// Duplicates are kept: two requests for the same slot both count. The result is
// advisory; nothing prevents double booking.
func (s *DefaultBookingService) ListBookedSlots(ctx context.Context, date string) (*models.BookedSlots, error) {
	times, ok := s.cachedSlots(ctx, date)
	if !ok {
		bookings, err := s.repo.ListByDate(ctx, date, models.SlotHoldingStatuses)
		if err != nil {
			return nil, fmt.Errorf("failed to list booked slots for %s: %w", date, err)
		}
		times = make([]string, 0, len(bookings))
		for _, b := range bookings {
			times = append(times, b.Time)
		}
		if err := s.slots.Set(ctx, date, times); err != nil {
			s.logger.Warn("ListBookedSlots: cache write failed", zap.String("date", date), zap.Error(err))
		}
	}

	return &models.BookedSlots{
		Date:        date,
		BookedTimes: times,
		Total:       len(times),
	}, nil
}

func (s *DefaultBookingService) cachedSlots(ctx context.Context, date string) ([]string, bool) {
	times, ok, err := s.slots.Get(ctx, date)
	switch {
	case err != nil:
		metrics.IncSlotCacheError()
		s.logger.Warn("ListBookedSlots: cache read failed", zap.String("date", date), zap.Error(err))
		return nil, false
	case ok:
		metrics.IncSlotCacheHit()
		return times, true
	default:
		metrics.IncSlotCacheMiss()
		return nil, false
	}
}

func (s *DefaultBookingService) invalidateSlots(ctx context.Context, date string) {
	if err := s.slots.Invalidate(ctx, date); err != nil {
		s.logger.Warn("Submit: cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}
