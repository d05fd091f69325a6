package web

// errors.go writes the JSON body returned when a submission is not accepted.
//
// Every failure has the same shape so the form script can show the list:
//
//	{"success": false, "errors": ["name is required"]}
//
// Validation failures list one message per rejected field. Storage failures
// carry only core.StorageFailureMessage; the classified cause is logged by
// the service and never sent to the client.

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/leadsite/internal/logging"
)

// SubmitResponse is the JSON body of a rejected or failed submission.
type SubmitResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// respondSubmitErrors writes status with the list of messages.
func respondSubmitErrors(w http.ResponseWriter, r *http.Request, status int, messages []string) {
	if messages == nil {
		messages = []string{}
	}

	logging.FromContext(r.Context()).Debug("submission not accepted",
		"status", status,
		"errors", messages,
	)

	writeJSON(w, r, status, SubmitResponse{Success: false, Errors: messages})
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are only logged since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
