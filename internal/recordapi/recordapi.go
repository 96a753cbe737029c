// Package recordapi defines the wire format of the record storage API
// shared by the server and the remote store.
package recordapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Header names carried by every authenticated request
const (
	HeaderProjectID = "X-Project-Id"
	HeaderAPIKey    = "X-Api-Key"
)

// Table names under /api/v1/records
const (
	TableTasks      = "tasks"
	TableCategories = "categories"
)

// BasePath is the prefix of every record route
const BasePath = "/api/v1/records"

// Envelope wraps every response body
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Results []Result        `json:"results,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// CreateRequest is the body of a create call
type CreateRequest struct {
	Records []json.RawMessage `json:"records"`
}

// Result is the per-record outcome of a create call
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// FieldError names a rejected field
type FieldError struct {
	FieldLabel string `json:"fieldLabel"`
	Message    string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.FieldLabel, e.Message)
}

// Failure is a non-successful envelope returned by the API
type Failure struct {
	Status  int
	Message string
	Errors  []FieldError
}

func (f *Failure) Error() string {
	if len(f.Errors) == 0 {
		return fmt.Sprintf("record api: %d %s", f.Status, f.Message)
	}
	parts := make([]string, len(f.Errors))
	for i, e := range f.Errors {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("record api: %d %s (%s)", f.Status, f.Message, strings.Join(parts, "; "))
}

// OK builds a successful envelope around v
func OK(v any) (Envelope, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Success: true, Data: data}, nil
}

// Fail builds a failed envelope
func Fail(message string, errs ...FieldError) Envelope {
	return Envelope{Success: false, Message: message, Errors: errs}
}
