package http

import (
	"encoding/json"
	"net/http"
	apperrors "stayquest/pkg/errors"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type HotelMessageResponse struct {
	Message string `json:"message"`
	Hotel   any    `json:"hotel"`
}

type BookingMessageResponse struct {
	Message string `json:"message"`
	Booking any    `json:"booking"`
}

type IndexResponse struct {
	Message string `json:"message"`
	Indexed int    `json:"indexed"`
}

// WriteJSON writes data as the raw JSON body. Responses are not wrapped in
// an envelope.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	return apperrors.WriteError(w, err)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteCreated answers 201 with an empty body.
func WriteCreated(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
