package http

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform JSON response shape. Successful responses carry
// data and an optional message; failures carry an error string and optional
// details.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// JSONResponseBuilder provides a fluent API for building API responses.
type JSONResponseBuilder struct {
	statusCode int
	envelope   envelope
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		envelope:   envelope{Success: true},
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Data sets the payload of a successful response.
func (b *JSONResponseBuilder) Data(data any) *JSONResponseBuilder {
	b.envelope.Data = data
	return b
}

// Message attaches a human-readable note to a successful response.
func (b *JSONResponseBuilder) Message(message string) *JSONResponseBuilder {
	b.envelope.Message = message
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.statusCode)
	_ = json.NewEncoder(w).Encode(b.envelope)
}

// ErrorResponse creates a standard error response.
func ErrorResponse(statusCode int, errMsg, details string) *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: statusCode,
		envelope:   envelope{Success: false, Error: errMsg, Details: details},
	}
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(errMsg, details string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, errMsg, details)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(details string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, "internal server error", details)
}

// MethodNotAllowedError creates a 405 Method Not Allowed error response.
func MethodNotAllowedError(allowedMethods string) *JSONResponseBuilder {
	b := ErrorResponse(http.StatusMethodNotAllowed, "method not allowed", "")
	b.envelope.Details = "allowed: " + allowedMethods
	return b
}
