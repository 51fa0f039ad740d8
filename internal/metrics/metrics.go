package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barber_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AppointmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_appointments_total",
			Help: "Appointments created or moved into a status",
		},
		[]string{"status"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_booking_conflicts_total",
			Help: "Bookings rejected because the slot was taken",
		},
	)

	AvailabilityTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_availability_computations_total",
			Help: "Slot availability computations by outcome",
		},
		[]string{"outcome"},
	)

	AvailabilityDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barber_availability_duration_seconds",
			Help:    "Time spent fetching inputs and computing available slots",
			Buckets: prometheus.DefBuckets,
		},
	)

	SettingsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_settings_cache_total",
			Help: "Settings cache lookups by result",
		},
		[]string{"result"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barber_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_events_published_total",
			Help: "Domain events published to the broker",
		},
		[]string{"routing_key", "status"},
	)

	RemindersSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_reminders_sent_total",
			Help: "Appointment reminders queued",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAppointment(status string) {
	AppointmentsTotal.WithLabelValues(status).Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

// RecordAvailability counts one computation; outcome is ok, misconfigured or unavailable.
func RecordAvailability(outcome string, elapsed time.Duration) {
	AvailabilityTotal.WithLabelValues(outcome).Inc()
	AvailabilityDuration.Observe(elapsed.Seconds())
}

func RecordSettingsCache(result string) {
	SettingsCacheTotal.WithLabelValues(result).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}

func RecordEvent(routingKey, status string) {
	EventsPublishedTotal.WithLabelValues(routingKey, status).Inc()
}

func RecordReminder() {
	RemindersSentTotal.Inc()
}
