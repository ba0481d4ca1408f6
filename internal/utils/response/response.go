// Package response holds the small helpers handlers use to answer
// requests that are not full HTML pages: JSON status documents and
// human-readable validation messages.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope for JSON status answers:
//
//	{ "status": "error", "error": "database is locked" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data JSON-encoded with the given HTTP status code.
// Header() → WriteHeader() → body writes, in that order.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is the body of a successful status answer.
func OK() Response {
	return Response{Status: StatusOK}
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationMessages turns validator field errors into one English
// sentence per failing field, in struct field order. Field names are
// whatever the validator reports, i.e. the form input names when the
// validator was built with a tag-name function.
//
//	field firstname is required
//	field phone must be at most 20 characters
func ValidationMessages(errs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			messages = append(messages, fmt.Sprintf("field %s is required", e.Field()))
		case "max":
			messages = append(messages,
				fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param()))
		case "email":
			messages = append(messages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return messages
}
