package books

import (
	"errors"
	"fmt"
)

// Common Books API client errors
var (
	// ErrMissingInvoiceID is returned when the caller did not supply an
	// invoice id. It is raised before any request is made.
	ErrMissingInvoiceID = errors.New("invoice id is required")

	// ErrHTMLResponse is returned when the API answers with an HTML document
	// instead of JSON, the signal that the configured base URL points at a
	// web page rather than the Books API.
	ErrHTMLResponse = errors.New("received HTML instead of JSON")

	// ErrRequestFailed is returned for responses with a non-2xx status.
	ErrRequestFailed = errors.New("request failed")
)

// APIError wraps client failures with the operation that failed, the
// requested URL and, when available, the HTTP status and the error message
// extracted from the response envelope.
type APIError struct {
	// Op is the operation that failed (e.g. "FetchInvoices").
	Op string

	// URL is the full request URL, empty when the failure happened before
	// any request was built.
	URL string

	// Status is the HTTP status code, 0 when no response was received.
	Status int

	// Message is the error/message field from the response envelope.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	target := e.Op
	if e.URL != "" {
		target = e.Op + " " + e.URL
	}
	if e.Message != "" {
		return fmt.Sprintf("books: %s: %s", target, e.Message)
	}
	return fmt.Sprintf("books: %s: %v", target, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *APIError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
