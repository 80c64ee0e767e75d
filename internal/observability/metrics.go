package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query paths reported in the "path" label.
const (
	PathCode = "code" // literal legal or harmonized code lookup
	PathText = "text" // scored free-text search
)

var (
	// searchQueries counts executed searches by path and mode. Both labels
	// come from small closed sets.
	searchQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxsearch_queries_total",
			Help: "Total number of catalog searches.",
		},
		[]string{"path", "mode"},
	)

	// searchResults records how many items a search returned before paging.
	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taxsearch_query_results",
			Help:    "Number of items matched by a catalog search.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// searchLatency records engine time only (search, filter, sort).
	searchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxsearch_query_duration_seconds",
			Help:    "Time spent matching and ranking a catalog search.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"path"},
	)

	// suggestions counts autocomplete requests by whether anything was proposed.
	suggestions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxsearch_suggestions_total",
			Help: "Total number of autocomplete requests.",
		},
		[]string{"outcome"},
	)

	// catalogInfo is 1 for the served catalog version; the value of
	// catalogItems is its row count.
	catalogInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taxsearch_catalog_info",
			Help: "Served catalog version (always 1).",
		},
		[]string{"version"},
	)
	catalogItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taxsearch_catalog_items",
			Help: "Number of legal codes in the served catalog.",
		},
	)
)

func init() {
	prometheus.MustRegister(searchQueries, searchResults, searchLatency, suggestions, catalogInfo, catalogItems)
}

// ObserveQuery records one executed search.
func ObserveQuery(path, mode string, results int, took time.Duration) {
	searchQueries.WithLabelValues(path, mode).Inc()
	searchResults.Observe(float64(results))
	searchLatency.WithLabelValues(path).Observe(took.Seconds())
}

// ObserveSuggest records one autocomplete request.
func ObserveSuggest(n int) {
	outcome := "hit"
	if n == 0 {
		outcome = "empty"
	}
	suggestions.WithLabelValues(outcome).Inc()
}

// SetCatalogInfo publishes the served catalog version and size. A previous
// version series is dropped.
func SetCatalogInfo(version string, items int) {
	catalogInfo.Reset()
	catalogInfo.WithLabelValues(version).Set(1)
	catalogItems.Set(float64(items))
}
