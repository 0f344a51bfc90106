package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"stayquest/pkg/logger"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
}

func decodeCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Code
}

func TestRequestLogging_SetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("request id %q is not a uuid", seen)
	}
	if w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("header %q != context %q", w.Header().Get(RequestIDHeader), seen)
	}

	incoming := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	r.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen != incoming {
		t.Errorf("incoming id not reused: %q", seen)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	r.Header.Set(RequestIDHeader, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen == "<script>" {
		t.Error("malformed incoming id should be replaced")
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("panic value leaked to client")
	}
}

func TestRequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	w := httptest.NewRecorder()
	RequestTimeout(20*time.Millisecond)(slow).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", w.Code)
	}
	if code := decodeCode(t, w); code != "TIMEOUT" {
		t.Errorf("code = %s", code)
	}

	w = httptest.NewRecorder()
	RequestTimeout(time.Second)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("fast handler status = %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewClientRateLimiter(1, 2, nil, logger.Discard())
	defer limiter.Stop()
	h := RateLimit(limiter)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("other client should not be limited, got %d", w.Code)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	if got := ClientIP(r); got != "192.0.2.1" {
		t.Errorf("ClientIP() = %q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("ClientIP() with XFF = %q", got)
	}
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/api/hotels":                                   "/api/hotels",
		"/api/hotels/665f1c2e9b1e8a3d4c5b6a70":          "/api/hotels/:id",
		"/api/bookings/hotels/665f1c2e9b1e8a3d4c5b6a70": "/api/bookings/hotels/:id",
		"/api/hotels/search/retrieve":                   "/api/hotels/search/retrieve",
	}
	for in, want := range tests {
		if got := RouteLabel(in); got != want {
			t.Errorf("RouteLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCORS(t *testing.T) {
	h := CORS("https://app.example")(okHandler())

	r := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Errorf("allow origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))
	if w.Code != http.StatusOK {
		t.Errorf("simple request status = %d", w.Code)
	}
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body.Message != "Route not found" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler(), mw("a"), mw("b"), mw("c")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, "") != "abc" {
		t.Errorf("order = %v", order)
	}
}
