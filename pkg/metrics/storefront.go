package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// StorefrontMetrics records catalog, cart, checkout and HTTP activity.
// A nil receiver or one built without a registerer is a no-op.
type StorefrontMetrics struct {
	cartTransitions *prometheus.CounterVec
	searches        *prometheus.CounterVec
	searchResults   prometheus.Histogram
	checkouts       prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on reg.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		cartTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_transitions_total",
			Help:      "Cart state transitions applied, by operation.",
		}, []string{"op"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_searches_total",
			Help:      "Catalog filter evaluations, by selected category.",
		}, []string{"category"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_search_results",
			Help:      "Number of products visible after filtering.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_intents_total",
			Help:      "Checkout requests handed to the phone collaborator.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.cartTransitions, m.searches, m.searchResults, m.checkouts, m.requests, m.requestDuration)
	return m
}

// CartTransition counts one applied cart operation.
func (m *StorefrontMetrics) CartTransition(op string) {
	if m == nil || m.cartTransitions == nil {
		return
	}
	m.cartTransitions.WithLabelValues(normalizeLabel(op)).Inc()
}

// CatalogSearch counts a filter evaluation and its result size.
func (m *StorefrontMetrics) CatalogSearch(category string, results int) {
	if m == nil || m.searches == nil {
		return
	}
	m.searches.WithLabelValues(normalizeLabel(category)).Inc()
	m.searchResults.Observe(float64(results))
}

// CheckoutRequested counts one checkout intent.
func (m *StorefrontMetrics) CheckoutRequested() {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.Inc()
}

// ObserveRequest records a served HTTP request.
func (m *StorefrontMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
