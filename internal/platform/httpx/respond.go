// Package httpx provides the JSON response envelope used by the API.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard response body: {"status": bool, "message": "..."}.
// Success payloads extend it with items/item/extra fields via JSON below.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// OK sends a 200 response with status=true and an optional message.
func OK(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Status: true, Message: message})
}

// Error sends an error envelope with status=false.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: false, Message: message})
}

// DecodeJSON decodes the JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
