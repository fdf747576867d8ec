// Package shared holds the JSON response helpers used by every handler.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError translates a domain error into the JSON error envelope. Codes
// map to HTTP statuses centrally so handlers stay thin.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	message := err.Error()
	if code == dErrors.CodeInternal {
		// Do not leak internals to external callers.
		message = "internal error"
	}
	WriteJSON(w, dErrors.HTTPStatus(err), ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}
