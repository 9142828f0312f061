package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// Bookings
	bookingsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_submitted_total",
			Help: "Booking submissions by outcome (stored, store_failed).",
		},
		[]string{"outcome"},
	)
	bookingNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_notifications_total",
			Help: "Booking notification attempts by result (sent, skipped, failed) and failure kind.",
		},
		[]string{"result", "kind"},
	)
	notificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_notification_duration_seconds",
			Help:    "Time spent delivering booking emails (seconds).",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	// Slot cache
	slotCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_cache_lookups_total",
			Help: "Booked-slot cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,

			bookingsSubmitted,
			bookingNotifications,
			notificationDuration,

			slotCacheLookups,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// --- HTTP ---
func ObserveHTTPRequest(method, route string, code int, d time.Duration) {
	c := strconv.Itoa(code)
	httpRequests.WithLabelValues(method, route, c).Inc()
	httpDuration.WithLabelValues(method, route, c).Observe(d.Seconds())
}

// --- Bookings ---
func IncBookingStored()      { bookingsSubmitted.WithLabelValues("stored").Inc() }
func IncBookingStoreFailed() { bookingsSubmitted.WithLabelValues("store_failed").Inc() }

func IncNotificationSent()    { bookingNotifications.WithLabelValues("sent", "").Inc() }
func IncNotificationSkipped() { bookingNotifications.WithLabelValues("skipped", "").Inc() }
func IncNotificationFailed(kind string) {
	bookingNotifications.WithLabelValues("failed", kind).Inc()
}
func ObserveNotification(d time.Duration) { notificationDuration.Observe(d.Seconds()) }

// --- Slot cache ---
func IncSlotCacheHit()   { slotCacheLookups.WithLabelValues("hit").Inc() }
func IncSlotCacheMiss()  { slotCacheLookups.WithLabelValues("miss").Inc() }
func IncSlotCacheError() { slotCacheLookups.WithLabelValues("error").Inc() }
