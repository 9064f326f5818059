package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Reason  string `json:"reason,omitempty"`
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("Code: %d, Message: %s: %s", e.Code, e.Message, e.Reason)
}

// NewError builds an APIError, taking the reason from err when given.
func NewError(code int, message string, err error) *APIError {
	e := &APIError{Code: code, Message: message}
	if err != nil {
		e.Reason = err.Error()
	}
	return e
}

func writeError(w http.ResponseWriter, e *APIError) {
	writeJSON(w, e.Code, e)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
