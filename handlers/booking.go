package handlers

import (
	"errors"
	"net/http"

	"ingcap/models"
	"ingcap/services/booking"
	"ingcap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the consultation booking workflow.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// SendBooking stores a booking request and attempts the notification emails.
func (h *BookingHandler) SendBooking(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.Submit(c.Request.Context(), req)
	if err != nil {
		var perr *booking.PersistenceError
		if errors.As(err, &perr) {
			logger.Error("SendBooking: booking could not be stored", zap.String("bookingID", perr.BookingID), zap.Error(err))
		} else {
			logger.Error("SendBooking: unexpected failure", zap.Error(err))
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process booking request", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBookings lists the most recent bookings for the admin view.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	bookings, err := h.Service.ListBookings(c.Request.Context())
	if err != nil {
		getLogger(c).Error("GetBookings: failed to fetch bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBookedSlots returns the times already requested for a date. A store failure
// degrades to an empty list so the booking form keeps working.
func (h *BookingHandler) GetBookedSlots(c *gin.Context) {
	date := c.Param("date")

	slots, err := h.Service.ListBookedSlots(c.Request.Context(), date)
	if err != nil {
		getLogger(c).Error("GetBookedSlots: failed to fetch booked slots", zap.String("date", date), zap.Error(err))
		slots = &models.BookedSlots{Date: date, BookedTimes: []string{}}
	}
	c.JSON(http.StatusOK, slots)
}

// TestEmail checks the mail server login without sending anything.
func (h *BookingHandler) TestEmail(c *gin.Context) {
	res := h.Service.TestEmailTransport(c.Request.Context())
	if !res.OK() {
		getLogger(c).Warn("TestEmail: transport check failed",
			zap.String("status", string(res.Status)),
			zap.String("message", res.Message),
		)
		c.JSON(http.StatusOK, gin.H{"error": res.Message, "status": res.Status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message})
}
