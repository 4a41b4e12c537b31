package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordResolver(t *testing.T) {
	m := NewMetrics()
	m.RecordResolver("apiVersion", "ok", 5*time.Millisecond)
	m.RecordResolver("apiVersion", "ok", 5*time.Millisecond)
	m.RecordResolver("resetUserPassword", "NOT_FOUND", time.Millisecond)

	if got := testutil.ToFloat64(m.resolverTotal.WithLabelValues("apiVersion", "ok")); got != 2 {
		t.Fatalf("expected 2 apiVersion calls, got %v", got)
	}
	if got := testutil.ToFloat64(m.resolverTotal.WithLabelValues("resetUserPassword", "NOT_FOUND")); got != 1 {
		t.Fatalf("expected 1 failed reset, got %v", got)
	}
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/graphql", "POST", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `dlf_api_http_requests_total{method="POST",route="/graphql",status="200"} 1`) {
		t.Fatalf("request counter missing from exposition:\n%s", body)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordResolver("users", "ok", 0)
}
