package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError translates err into its HTTP status and JSON body.
// Errors that are not an *AppError become a 500 with GenericInternalMessage.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	response := ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}

	return json.NewEncoder(w).Encode(response)
}
