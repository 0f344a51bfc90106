package middleware

import (
	"net/http"
	apperrors "stayquest/pkg/errors"
)

// NotFound answers unmatched routes with a JSON 404.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = apperrors.WriteError(w, apperrors.New(apperrors.CodeNotFound, "Route not found", http.StatusNotFound))
	})
}

// MethodNotAllowed answers a known path with an unsupported method.
func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = apperrors.WriteError(w, apperrors.New(apperrors.CodeMethodNotAllowed, "Method not allowed", http.StatusMethodNotAllowed))
	})
}
