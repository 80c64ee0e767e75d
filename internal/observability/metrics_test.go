package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveQuery_IncrementsCounters(t *testing.T) {
	before := testutil.ToFloat64(searchQueries.WithLabelValues(PathText, "fuzzy"))
	ObserveQuery(PathText, "fuzzy", 3, 2*time.Millisecond)
	ObserveQuery(PathText, "fuzzy", 0, time.Millisecond)

	if got := testutil.ToFloat64(searchQueries.WithLabelValues(PathText, "fuzzy")); got != before+2 {
		t.Fatalf("queries_total = %v; want %v", got, before+2)
	}
	if n := testutil.CollectAndCount(searchResults); n != 1 {
		t.Fatalf("expected one results histogram, got %d", n)
	}
	if n := testutil.CollectAndCount(searchLatency); n < 1 {
		t.Fatalf("expected latency series to be collected")
	}
}

func TestObserveSuggest_Outcome(t *testing.T) {
	hit := testutil.ToFloat64(suggestions.WithLabelValues("hit"))
	empty := testutil.ToFloat64(suggestions.WithLabelValues("empty"))

	ObserveSuggest(4)
	ObserveSuggest(0)

	if got := testutil.ToFloat64(suggestions.WithLabelValues("hit")); got != hit+1 {
		t.Fatalf("hit = %v; want %v", got, hit+1)
	}
	if got := testutil.ToFloat64(suggestions.WithLabelValues("empty")); got != empty+1 {
		t.Fatalf("empty = %v; want %v", got, empty+1)
	}
}

func TestSetCatalogInfo_ReplacesVersion(t *testing.T) {
	SetCatalogInfo("v1-10", 10)
	SetCatalogInfo("v2-12", 12)

	if n := testutil.CollectAndCount(catalogInfo); n != 1 {
		t.Fatalf("expected a single version series, got %d", n)
	}
	if got := testutil.ToFloat64(catalogInfo.WithLabelValues("v2-12")); got != 1 {
		t.Fatalf("info = %v; want 1", got)
	}
	if got := testutil.ToFloat64(catalogItems); got != 12 {
		t.Fatalf("items = %v; want 12", got)
	}
}
