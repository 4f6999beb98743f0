package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters for triage, assignment, validation and
// appointment lifecycle.
type SchedulingMetrics struct {
	appointmentsCreated *prometheus.CounterVec
	triageTotal         *prometheus.CounterVec
	classifierFallbacks *prometheus.CounterVec
	assignmentsTotal    *prometheus.CounterVec
	validationsTotal    *prometheus.CounterVec
	transitionsTotal    *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medsched",
			Subsystem: "appointments",
			Name:      "created_total",
			Help:      "Appointments persisted, split by whether a doctor was assigned",
		}, []string{"assigned"}),
		triageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medsched",
			Subsystem: "triage",
			Name:      "classifications_total",
			Help:      "Symptom classifications by specialty, confidence and backend",
		}, []string{"specialty", "confidence", "source"}),
		classifierFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medsched",
			Subsystem: "triage",
			Name:      "classifier_fallbacks_total",
			Help:      "Times the model classifier was bypassed for the keyword classifier",
		}, []string{"reason"}),
		assignmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medsched",
			Subsystem: "assignment",
			Name:      "doctor_assignments_total",
			Help:      "Doctor assignments by the strategy that produced them",
		}, []string{"strategy"}),
		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medsched",
			Subsystem: "validation",
			Name:      "validations_total",
			Help:      "Validation runs by operation and outcome",
		}, []string{"operation", "outcome"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medsched",
			Subsystem: "appointments",
			Name:      "transitions_total",
			Help:      "Appointment status changes by target status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.appointmentsCreated,
		m.triageTotal,
		m.classifierFallbacks,
		m.assignmentsTotal,
		m.validationsTotal,
		m.transitionsTotal,
	)
	return m
}

func (m *SchedulingMetrics) ObserveAppointmentCreated(assigned bool) {
	if m == nil {
		return
	}
	label := "false"
	if assigned {
		label = "true"
	}
	m.appointmentsCreated.WithLabelValues(label).Inc()
}

func (m *SchedulingMetrics) ObserveTriage(specialty, confidence, source string) {
	if m == nil {
		return
	}
	m.triageTotal.WithLabelValues(specialty, confidence, source).Inc()
}

func (m *SchedulingMetrics) ObserveClassifierFallback(reason string) {
	if m == nil {
		return
	}
	m.classifierFallbacks.WithLabelValues(reason).Inc()
}

func (m *SchedulingMetrics) ObserveAssignment(strategy string) {
	if m == nil {
		return
	}
	m.assignmentsTotal.WithLabelValues(strategy).Inc()
}

func (m *SchedulingMetrics) ObserveValidation(operation string, valid bool) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.validationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *SchedulingMetrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(status).Inc()
}
