package middleware

import (
	"net/http"
	"stayquest/pkg/metrics"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Metrics records request count and latency per normalized route.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			metrics.ObserveHTTP(RouteLabel(r.URL.Path), r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}

// RouteLabel replaces id-like path segments with ":id" to keep label
// cardinality bounded.
func RouteLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if primitive.IsValidObjectID(seg) || strings.HasPrefix(seg, "user_") {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
