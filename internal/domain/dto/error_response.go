package dto

import "time"

// ErrorResponse is the JSON envelope returned by every failing endpoint.
//
// Message carries a short human-readable description; ErrorDetails carries
// the underlying error text when one exists. Timestamp records when the
// response was built.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Invalid request"`
	ErrorDetails string    `json:"error,omitempty" example:"side must be long or short"`
	Timestamp    time.Time `json:"timestamp" example:"2026-01-02T15:04:05Z"`
}

// Error implements the error interface so handlers can pass the envelope
// around as a plain error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an envelope from a message and an optional inner
// error.
func NewErrorResponse(message string, err error) ErrorResponse {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return ErrorResponse{
		Message:      message,
		ErrorDetails: details,
		Timestamp:    time.Now(),
	}
}
