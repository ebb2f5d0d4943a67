package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for marketplace operations.
type Metrics struct {
	BookingsCreated    prometheus.Counter
	SessionsConfirmed  prometheus.Counter
	SessionsCancelled  prometheus.Counter
	SessionsCompleted  prometheus.Counter
	CreditsTransferred prometheus.Counter
	CreditsGranted     prometheus.Counter
	ReviewsSubmitted   prometheus.Counter
}

// NewMetrics creates and registers the operation counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillverse_bookings_created_total",
			Help: "Number of sessions booked.",
		}),
		SessionsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillverse_sessions_confirmed_total",
			Help: "Number of sessions confirmed by their host.",
		}),
		SessionsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillverse_sessions_cancelled_total",
			Help: "Number of sessions cancelled.",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillverse_sessions_completed_total",
			Help: "Number of sessions completed with a credit transfer.",
		}),
		CreditsTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillverse_credits_transferred_total",
			Help: "Credits moved from learners to hosts by completions.",
		}),
		CreditsGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillverse_credits_granted_total",
			Help: "Credits granted through purchases and refunds.",
		}),
		ReviewsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillverse_reviews_submitted_total",
			Help: "Number of reviews stored.",
		}),
	}

	reg.MustRegister(
		m.BookingsCreated,
		m.SessionsConfirmed,
		m.SessionsCancelled,
		m.SessionsCompleted,
		m.CreditsTransferred,
		m.CreditsGranted,
		m.ReviewsSubmitted,
	)

	return m
}
