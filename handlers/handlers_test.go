package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ingcap/models"
	"ingcap/services/booking"
	"ingcap/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBookingService struct {
	submitResult *models.SubmissionResult
	submitErr    error
	submitted    []models.BookingRequest
	bookings     []models.BookingView
	slots        *models.BookedSlots
	slotsErr     error
	transport    models.TransportCheckResult
}

func (s *stubBookingService) Submit(_ context.Context, req models.BookingRequest) (*models.SubmissionResult, error) {
	s.submitted = append(s.submitted, req)
	return s.submitResult, s.submitErr
}

func (s *stubBookingService) ListBookings(context.Context) ([]models.BookingView, error) {
	return s.bookings, nil
}

func (s *stubBookingService) ListBookedSlots(context.Context, string) (*models.BookedSlots, error) {
	return s.slots, s.slotsErr
}

func (s *stubBookingService) TestEmailTransport(context.Context) models.TransportCheckResult {
	return s.transport
}

func newBookingRouter(svc booking.BookingService) *gin.Engine {
	h := NewBookingHandler(svc)
	r := gin.New()
	r.POST("/api/send-booking", h.SendBooking)
	r.GET("/api/bookings", h.GetBookings)
	r.GET("/api/booked-slots/:date", h.GetBookedSlots)
	r.GET("/api/test-email", h.TestEmail)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendBooking(t *testing.T) {
	svc := &stubBookingService{submitResult: &models.SubmissionResult{
		Success:   true,
		Message:   "saved",
		BookingID: "b-1",
	}}
	r := newBookingRouter(svc)

	w := do(r, http.MethodPost, "/api/send-booking", map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "+44 20 1234 5678",
		"date":  "2025-02-03",
		"time":  "10:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "b-1", got["booking_id"])
	assert.Equal(t, false, got["email_sent"])
	require.Len(t, svc.submitted, 1)
	assert.Empty(t, svc.submitted[0].Company)
}

func TestSendBooking_InvalidInput(t *testing.T) {
	svc := &stubBookingService{}
	r := newBookingRouter(svc)

	w := do(r, http.MethodPost, "/api/send-booking", map[string]string{"name": "Jane Doe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/send-booking", bytes.NewBufferString("{not json"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.submitted)
}

func TestSendBooking_PersistenceFailure(t *testing.T) {
	svc := &stubBookingService{submitErr: &booking.PersistenceError{
		Op:        "create",
		BookingID: "b-1",
		Err:       errors.New("no reachable servers"),
	}}
	r := newBookingRouter(svc)

	w := do(r, http.MethodPost, "/api/send-booking", map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "1",
		"date":  "2025-02-03",
		"time":  "10:00",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var got utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Failed to process booking request", got.Message)
	assert.Contains(t, got.Details, "no reachable servers")
}

func TestGetBookings(t *testing.T) {
	svc := &stubBookingService{bookings: []models.BookingView{{ID: "b-2", Name: "B"}, {ID: "b-1", Name: "A"}}}
	w := do(newBookingRouter(svc), http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Bookings []models.BookingView `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Bookings, 2)
	assert.Equal(t, "b-2", got.Bookings[0].ID)
}

func TestGetBookedSlots(t *testing.T) {
	svc := &stubBookingService{slots: &models.BookedSlots{
		Date:        "2025-02-03",
		BookedTimes: []string{"10:00", "10:00"},
		Total:       2,
	}}
	w := do(newBookingRouter(svc), http.MethodGet, "/api/booked-slots/2025-02-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2025-02-03","booked_times":["10:00","10:00"],"total_bookings":2}`, w.Body.String())
}

func TestGetBookedSlots_StoreFailure(t *testing.T) {
	svc := &stubBookingService{slotsErr: errors.New("timeout")}
	w := do(newBookingRouter(svc), http.MethodGet, "/api/booked-slots/2025-02-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2025-02-03","booked_times":[],"total_bookings":0}`, w.Body.String())
}

func TestTestEmail(t *testing.T) {
	svc := &stubBookingService{transport: models.TransportCheckResult{Status: models.TransportOK, Message: "Email configuration is working"}}
	w := do(newBookingRouter(svc), http.MethodGet, "/api/test-email", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Email configuration is working"}`, w.Body.String())

	svc.transport = models.TransportCheckResult{Status: models.TransportAuthFailed, Message: "authentication failed"}
	w = do(newBookingRouter(svc), http.MethodGet, "/api/test-email", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"authentication failed","status":"auth_failed"}`, w.Body.String())
}

func TestHealthHandler(t *testing.T) {
	storeUp := true
	monitor := utils.NewHealthMonitor(func(context.Context) error {
		if storeUp {
			return nil
		}
		return errors.New("down")
	}, nil, 0)

	r := gin.New()
	r.GET("/health", HealthHandler(monitor))

	monitor.CheckNow(context.Background())
	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	storeUp = false
	monitor.CheckNow(context.Background())
	w = do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
