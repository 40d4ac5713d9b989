package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the booking lifecycle.
type Metrics struct {
	// Reservation status transitions by action
	ReservationTransitions *prometheus.CounterVec

	// Reservations cancelled by the payment-window sweeper
	SweptReservations prometheus.Counter

	// Concrete slots produced by the recurring-template materializer
	MaterializedSlots prometheus.Counter

	// Notifications appended, by recipient kind
	NotificationsEmitted *prometheus.CounterVec

	// Best-effort side effects that failed (publish, mail)
	SideEffectFailures *prometheus.CounterVec
}

// New creates a Metrics instance with all booking metrics registered
// on the default registry.
func New() *Metrics {
	return NewFor(prometheus.DefaultRegisterer)
}

// NewFor registers the booking metrics on the given registerer. Tests pass
// a fresh registry so repeated construction cannot collide.
func NewFor(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReservationTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_reservation_transitions_total",
			Help: "Total reservation lifecycle transitions by action",
		}, []string{"action"}), // action: "create", "confirm_payment", "approve", "reject", "cancel", "admin_delete", "expire"

		SweptReservations: factory.NewCounter(prometheus.CounterOpts{
			Name: "studio_swept_reservations_total",
			Help: "Total reservations auto-cancelled past their payment deadline",
		}),

		MaterializedSlots: factory.NewCounter(prometheus.CounterOpts{
			Name: "studio_materialized_slots_total",
			Help: "Total concrete slots expanded from recurring templates",
		}),

		NotificationsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_notifications_emitted_total",
			Help: "Total notifications appended by recipient kind",
		}, []string{"recipient"}), // recipient: "user", "admin", "guest"

		SideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_side_effect_failures_total",
			Help: "Total best-effort side effects that failed and were swallowed",
		}, []string{"effect"}), // effect: "publish", "mail", "notification"
	}
}

// IncrementTransition records a reservation lifecycle transition.
func (m *Metrics) IncrementTransition(action string) {
	if m != nil {
		m.ReservationTransitions.WithLabelValues(action).Inc()
	}
}

// AddSwept records reservations cancelled by the sweeper.
func (m *Metrics) AddSwept(n int) {
	if m != nil {
		m.SweptReservations.Add(float64(n))
	}
}

// AddMaterialized records slots produced by the materializer.
func (m *Metrics) AddMaterialized(n int) {
	if m != nil {
		m.MaterializedSlots.Add(float64(n))
	}
}

// IncrementEmitted records an appended notification.
func (m *Metrics) IncrementEmitted(recipientKind string) {
	if m != nil {
		m.NotificationsEmitted.WithLabelValues(recipientKind).Inc()
	}
}

// IncrementSideEffectFailure records a swallowed side-effect failure.
func (m *Metrics) IncrementSideEffectFailure(effect string) {
	if m != nil {
		m.SideEffectFailures.WithLabelValues(effect).Inc()
	}
}
