package booking

import (
	"context"

	"ingcap/models"
)

// BookingService accepts consultation bookings and answers the read endpoints.
type BookingService interface {
	// Submit stores the booking, then attempts the notification emails.
	// The only error it returns is a *PersistenceError.
	Submit(ctx context.Context, req models.BookingRequest) (*models.SubmissionResult, error)
	// ListBookings returns the most recent bookings, newest first.
	ListBookings(ctx context.Context) ([]models.BookingView, error)
	// ListBookedSlots returns the slot labels already requested for date.
	ListBookedSlots(ctx context.Context, date string) (*models.BookedSlots, error)
	// TestEmailTransport performs a login handshake against the mail server.
	TestEmailTransport(ctx context.Context) models.TransportCheckResult
}
