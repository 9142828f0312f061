package bookingRepo

import (
	"context"
	"errors"

	"ingcap/models"
)

var (
	// ErrBookingNotFound is returned when no booking has the given id.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrStatusTransition is returned when a booking has already left the saved status.
	ErrStatusTransition = errors.New("booking status already finalised")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// UpdateDelivery records the notification outcome of a saved booking.
	UpdateDelivery(ctx context.Context, id string, update models.DeliveryUpdate) error
	// GetByID retrieves a booking by its id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListRecent returns up to limit bookings, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Booking, error)
	// ListByDate returns bookings for a date whose status is one of statuses.
	// An empty statuses slice matches every status.
	ListByDate(ctx context.Context, date string, statuses []models.BookingStatus) ([]models.Booking, error)
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
