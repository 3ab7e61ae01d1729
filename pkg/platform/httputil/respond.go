package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the stable response shape returned by every verification
// endpoint. Success responses carry Message and Data; failures carry Error.
type Envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// WriteSuccess writes the success envelope with HTTP 200.
func WriteSuccess(w http.ResponseWriter, status int, message string, data json.RawMessage) {
	write(w, status, Envelope{
		Success: true,
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// WriteFailure writes the failure envelope. The HTTP status mirrors the
// envelope status field.
func WriteFailure(w http.ResponseWriter, status int, errMsg string) {
	write(w, status, Envelope{
		Success: false,
		Status:  status,
		Error:   errMsg,
	})
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
