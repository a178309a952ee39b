// Package respond writes every API response inside the same envelope.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope wraps all API payloads.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// encodeFailed is sent when a payload cannot be encoded. It is built by
// hand so it cannot fail itself.
var encodeFailed = []byte(`{"code":500,"message":"internal server error"}` + "\n")

// JSON writes data under message with status.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an envelope without data.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Code: status, Message: message})
}

// write encodes payload before committing the status, so a payload that
// does not encode (a non-finite number, say) becomes a 500.
func write(w http.ResponseWriter, status int, payload Envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("respond: encode payload failed", "status", status, "error", err)
		status, body = http.StatusInternalServerError, encodeFailed
	} else {
		body = append(body, '\n')
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Debug("respond: write body failed", "error", err)
	}
}
