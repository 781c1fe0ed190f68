package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts admissions and notifications for one app instance.
// Each instance owns its registry.
type Metrics struct {
	registry      *prometheus.Registry
	admissions    *prometheus.CounterVec
	guests        prometheus.Counter
	notifications *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them. restaurantID is
// attached to every series.
func NewMetrics(restaurantID string) *Metrics {
	labels := prometheus.Labels{"restaurant": restaurantID}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "booking",
			Name:        "admissions_total",
			Help:        "Reservation requests by decision reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		guests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "booking",
			Name:        "guests_booked_total",
			Help:        "Guests in accepted reservations.",
			ConstLabels: labels,
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "booking",
			Name:        "notifications_total",
			Help:        "Confirmation attempts by channel and result.",
			ConstLabels: labels,
		}, []string{"channel", "result"}),
	}
	m.registry.MustRegister(m.admissions, m.guests, m.notifications)

	// Pre-create series so every reason shows up as zero.
	for _, reason := range Reasons {
		m.admissions.WithLabelValues(reason)
	}
	for _, channel := range []string{"sms", "mail"} {
		m.notifications.WithLabelValues(channel, "success")
		m.notifications.WithLabelValues(channel, "failure")
	}
	return m
}

func (m *Metrics) observeDecision(d Decision) {
	m.admissions.WithLabelValues(d.Reason).Inc()
	if d.Accepted() {
		m.guests.Add(float64(d.Schedule.NumberOfPeople()))
	}
}

func (m *Metrics) observeNotification(channel string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.notifications.WithLabelValues(channel, result).Inc()
}

// Registry exposes the collectors, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the current values in the node exporter textfile
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
