// Package metrics provides Prometheus observability metrics for the quote service.
// The pricing engine never touches these; the CLI and HTTP server record each
// quote through Observe.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	customerrors "workshop-quote/errors"
	"workshop-quote/models"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// QuoteRequestsTotal counts quote requests by contract kind.
var QuoteRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "quote",
	Name:      "requests_total",
	Help:      "Total quote requests by contract kind",
}, []string{"kind"})

// QuoteErrorsTotal counts rejected requests by error kind.
var QuoteErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "quote",
	Name:      "errors_total",
	Help:      "Total rejected quote requests by error kind",
}, []string{"error_kind"})

// QuoteNotesTotal counts advisory notes attached to successful quotes.
// Sustained CAPACITY_EXCEEDED or INFEASIBLE_DEADLINE counts point at
// workshops being over-sold.
var QuoteNotesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "quote",
	Name:      "notes_total",
	Help:      "Advisory notes attached to quotes by note code",
}, []string{"code"})

// QuoteGrandTotal tracks the distribution of quoted grand totals in pounds.
var QuoteGrandTotal = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "quote",
	Name:      "grand_total_gbp",
	Help:      "Grand total of successful quotes in pounds",
	Buckets:   []float64{100, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
}, []string{"kind"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// QuoteDurationSeconds tracks time to price a request.
var QuoteDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "quote",
	Name:      "duration_seconds",
	Help:      "Time taken to price a quote request",
	Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
})

// RefdataPrisons reports the number of prisons in the loaded reference tables.
var RefdataPrisons = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "refdata",
	Name:      "prisons",
	Help:      "Number of prisons in the loaded reference tables",
})

// =============================================================================
// Helper Functions
// =============================================================================

// Observe records one pricing call. kind is the requested contract kind and
// may be empty when the request never got that far.
func Observe(kind models.ContractKind, result *models.QuoteResult, err error, elapsed time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	QuoteRequestsTotal.WithLabelValues(string(kind)).Inc()
	QuoteDurationSeconds.Observe(elapsed.Seconds())

	if err != nil {
		QuoteErrorsTotal.WithLabelValues(string(customerrors.KindOf(err))).Inc()
		return
	}
	if result == nil {
		return
	}
	for _, note := range result.Notes {
		QuoteNotesTotal.WithLabelValues(string(note.Code)).Inc()
	}
	QuoteGrandTotal.WithLabelValues(string(result.Kind)).Observe(result.Totals.GrandTotal.InexactFloat64())
}
