package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus tracks the notification outcome of a stored booking.
type BookingStatus string

const (
	StatusSaved       BookingStatus = "saved"        // stored, no email attempted yet (or email disabled)
	StatusEmailsSent  BookingStatus = "emails_sent"  // business and client emails delivered
	StatusEmailFailed BookingStatus = "email_failed" // delivery failed, see EmailError
)

// CanTransitionTo reports whether a booking in status s may move to next.
// Only saved bookings move, and only forward.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == StatusSaved && (next == StatusEmailsSent || next == StatusEmailFailed)
}

// SlotHoldingStatuses are the statuses whose bookings mark a time slot as taken.
var SlotHoldingStatuses = []BookingStatus{StatusSaved, StatusEmailsSent, StatusEmailFailed}

// BookingRequest is the consultation form submitted by the website.
type BookingRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Company string `json:"company"`
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD, not enforced
	Time    string `json:"time" binding:"required"` // free-form slot label
}

// Booking is the persisted form of a BookingRequest.
type Booking struct {
	StoreID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID            string             `bson:"id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	Company       string             `bson:"company" json:"company"`
	Date          string             `bson:"date" json:"date"`
	Time          string             `bson:"time" json:"time"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	Status        BookingStatus      `bson:"status" json:"status"`
	EmailError    string             `bson:"email_error,omitempty" json:"email_error,omitempty"`
	EmailSentTime *time.Time         `bson:"email_sent_time,omitempty" json:"email_sent_time,omitempty"`
	EmailsSent    []string           `bson:"emails_sent,omitempty" json:"emails_sent,omitempty"`
}

// DeliveryUpdate is the single post-send mutation applied to a booking.
type DeliveryUpdate struct {
	Status        BookingStatus
	EmailError    string
	EmailSentTime *time.Time
	Recipients    []string
}

// BookingView is a booking formatted for the admin listing.
type BookingView struct {
	StoreID       string        `json:"_id,omitempty"`
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Company       string        `json:"company"`
	Date          string        `json:"date"`
	DisplayDate   string        `json:"display_date"`
	Time          string        `json:"time"`
	Timestamp     string        `json:"timestamp"`
	Status        BookingStatus `json:"status"`
	EmailError    string        `json:"email_error,omitempty"`
	EmailSentTime string        `json:"email_sent_time,omitempty"`
	EmailsSent    []string      `json:"emails_sent,omitempty"`
}

// BookedSlots lists the slot labels already requested for a date.
type BookedSlots struct {
	Date        string   `json:"date"`
	BookedTimes []string `json:"booked_times"`
	Total       int      `json:"total_bookings"`
}

// SubmissionResult is returned to the website after a booking was stored.
// Fallback is set whenever no email went out.
type SubmissionResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id"`
	EmailSent bool   `json:"email_sent"`
	Fallback  bool   `json:"fallback,omitempty"`
}
