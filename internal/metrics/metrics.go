package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-contactform/components/postalcode"
	"github.com/goliatone/go-contactform/pkg/autofill"
	"github.com/goliatone/go-contactform/pkg/submit"
)

// Metrics provides observability for lookups and submissions.
type Metrics struct {
	registry *prometheus.Registry

	// Autofill outcomes on the rendered page
	AutofillOutcome *prometheus.CounterVec

	// Same-origin postal-code endpoint outcomes
	LookupOutcome *prometheus.CounterVec

	// Submission outcomes
	SubmitOutcome *prometheus.CounterVec

	// Payloads accepted by the built-in receiver
	Received prometheus.Counter
}

// New creates a Metrics instance registered on its own registry, together
// with the process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AutofillOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactform_autofill_outcomes_total",
			Help: "Total postal-code autofill outcomes",
		}, []string{"outcome"}), // cleared, invalid, not_found, failed, filled

		LookupOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactform_cep_lookups_total",
			Help: "Total postal-code endpoint lookups by outcome",
		}, []string{"outcome"}),

		SubmitOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactform_submissions_total",
			Help: "Total form submissions by outcome",
		}, []string{"outcome"}), // invalid, sent, rejected, failed

		Received: factory.NewCounter(prometheus.CounterOpts{
			Name: "contactform_received_total",
			Help: "Total payloads accepted by the contact receiver",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAutofill records an autofill outcome.
func (m *Metrics) ObserveAutofill(outcome autofill.Outcome) {
	if m != nil {
		m.AutofillOutcome.WithLabelValues(string(outcome)).Inc()
	}
}

// ObserveLookup records a postal-code endpoint outcome.
func (m *Metrics) ObserveLookup(outcome postalcode.Outcome) {
	if m != nil {
		m.LookupOutcome.WithLabelValues(string(outcome)).Inc()
	}
}

// ObserveSubmit records a submission outcome.
func (m *Metrics) ObserveSubmit(outcome submit.Outcome) {
	if m != nil {
		m.SubmitOutcome.WithLabelValues(string(outcome)).Inc()
	}
}

// IncrementReceived records a payload accepted by the receiver.
func (m *Metrics) IncrementReceived() {
	if m != nil {
		m.Received.Inc()
	}
}
