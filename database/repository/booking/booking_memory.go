package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ingcap/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryBookingRepo keeps bookings in process memory. It mirrors the Mongo
// repository's semantics and backs STORE_DRIVER=memory.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings []models.Booking
	index    map[string]int
}

// NewMemoryBookingRepo creates an empty in-memory BookingRepository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{index: make(map[string]int)}
}

func (r *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[booking.ID]; exists {
		return fmt.Errorf("error creating booking %s: duplicate id", booking.ID)
	}
	stored := cloneBooking(*booking)
	if stored.StoreID.IsZero() {
		stored.StoreID = primitive.NewObjectID()
	}
	r.index[stored.ID] = len(r.bookings)
	r.bookings = append(r.bookings, stored)
	return nil
}

func (r *MemoryBookingRepo) UpdateDelivery(_ context.Context, id string, update models.DeliveryUpdate) error {
	if !models.StatusSaved.CanTransitionTo(update.Status) {
		return fmt.Errorf("booking %s: cannot move to %q: %w", id, update.Status, ErrStatusTransition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, ErrBookingNotFound)
	}
	b := &r.bookings[i]
	if b.Status != models.StatusSaved {
		return fmt.Errorf("booking %s: %w", id, ErrStatusTransition)
	}

	b.Status = update.Status
	if update.EmailError != "" {
		b.EmailError = update.EmailError
	}
	if update.EmailSentTime != nil {
		sent := update.EmailSentTime.UTC()
		b.EmailSentTime = &sent
	}
	if len(update.Recipients) > 0 {
		b.EmailsSent = append([]string(nil), update.Recipients...)
	}
	return nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, ErrBookingNotFound)
	}
	b := cloneBooking(r.bookings[i])
	return &b, nil
}

func (r *MemoryBookingRepo) ListRecent(_ context.Context, limit int) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Booking, 0, len(r.bookings))
	for i := len(r.bookings) - 1; i >= 0; i-- {
		out = append(out, cloneBooking(r.bookings[i]))
	}
	// Reverse insertion order breaks timestamp ties the way an insert-ordered
	// descending sort would.
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Timestamp.After(out[b].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryBookingRepo) ListByDate(_ context.Context, date string, statuses []models.BookingStatus) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.Date != date || !statusIn(b.Status, statuses) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	return out, nil
}

func (r *MemoryBookingRepo) Ping(context.Context) error {
	return nil
}

func statusIn(s models.BookingStatus, statuses []models.BookingStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

func cloneBooking(b models.Booking) models.Booking {
	if b.EmailSentTime != nil {
		t := *b.EmailSentTime
		b.EmailSentTime = &t
	}
	if b.EmailsSent != nil {
		b.EmailsSent = append([]string(nil), b.EmailsSent...)
	}
	return b
}
