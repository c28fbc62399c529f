// Package errors defines the error types shared across the classic Reddit client.
package errors

import "fmt"

// ConfigError indicates a problem with the client configuration.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// AuthError indicates a login failure. It is returned when construction-time
// login fails, or when the login endpoint cannot be reached at all.
type AuthError struct {
	// StatusCode is the HTTP status code (if a response was received)
	StatusCode int
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *AuthError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("auth error: status code %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("auth error: %s", msg)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// StateError indicates an operation was attempted when the client is not in a
// state that allows it, such as an authenticated action without a session.
type StateError struct {
	// Operation is the name of the operation that was attempted
	Operation string
	// Message contains the detailed error message
	Message string
}

func (e *StateError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("state error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("state error: %s", e.Message)
}

// RequestError indicates a problem with making an API request.
type RequestError struct {
	// Operation is the name of the API operation that failed
	Operation string
	// URL is the URL that was being accessed
	URL string
	// Err contains the underlying error if available
	Err error
}

func (e *RequestError) Error() string {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Operation != "" && e.URL != "" {
		return fmt.Sprintf("request error during %s to %s: %s", e.Operation, e.URL, msg)
	}
	if e.Operation != "" {
		return fmt.Sprintf("request error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("request error: %s", msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseError indicates a problem decoding or interpreting an API response.
type ParseError struct {
	// Operation is the name of the API operation where parsing failed
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Operation != "" {
		return fmt.Sprintf("parse error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError represents an error response from the Reddit API, either a non-2xx
// status or a non-empty payload returned by a state-mutating action.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// Message is the error message or raw payload from Reddit
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}
