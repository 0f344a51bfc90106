package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stayquest/pkg/metrics"
)

func TestRegistryAndHandler(t *testing.T) {
	reg := metrics.InitRegistry()

	metrics.ObserveHTTP("/api/hotels", "GET", 200, 12*time.Millisecond)
	metrics.ObserveExternal("clerk", "get_user", 200, 30*time.Millisecond)
	metrics.ObserveCache("roles", "hit")
	metrics.ObserveKafka("stayquest.bookings", errors.New("broker down"), time.Millisecond)

	rr := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"stayquest_http_requests_total",
		"stayquest_external_requests_total",
		"stayquest_cache_events_total",
		`stayquest_kafka_messages_published_total{status="error"`,
	} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %s in output", name)
		}
	}
}
