package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	apperrors "stayquest/pkg/errors"
	"strconv"
	"strings"
)

// DecodeJSON reads a single JSON document from the request body into dst. A
// non-empty body must be sent as application/json. Handlers call it after
// their route guards, so authorization failures win over a bad media type.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.Validation("Request body is required", nil)
	}
	if r.ContentLength != 0 && mediaType(r.Header.Get("Content-Type")) != "application/json" {
		return apperrors.New(apperrors.CodeInvalidInput, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("Request body is required", nil)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.Validation("Invalid JSON body", map[string]any{"error": err.Error()})
	}
	return nil
}

func mediaType(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ";")
	return strings.ToLower(strings.TrimSpace(parts[0]))
}

// OptionalFloatQuery returns nil when the parameter is absent or blank.
func OptionalFloatQuery(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return &v, nil
}

func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
