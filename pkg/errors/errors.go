// Package errors defines the error types returned by the Reddit client.
//
// Every failure is a typed value that can be inspected with errors.As. OAuth
// flow failures additionally match one of the sentinel kinds below through
// errors.Is.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Authorization flow failure kinds.
var (
	ErrListener               = errors.New("callback listener failure")
	ErrMalformedCallback      = errors.New("malformed callback request")
	ErrMissingParameter       = errors.New("missing callback parameter")
	ErrStateMismatch          = errors.New("state mismatch with csrf token")
	ErrResponseWrite          = errors.New("error sending callback response")
	ErrTokenExchange          = errors.New("error exchanging tokens")
	ErrNoRefreshTokenReceived = errors.New("no refresh token received in oauth flow")
	ErrNoRefreshToken         = errors.New("no refresh token in client")
)

// ErrNoAccessToken is returned when a request is executed before an access
// token has been obtained.
var ErrNoAccessToken = errors.New("no access token found in oauth client")

// joinParts joins error message parts with the specified separator.
func joinParts(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

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

// AuthFlowError indicates a failure while running the authorization code flow
// or refreshing an access token.
type AuthFlowError struct {
	// Kind is one of the Err* sentinels declared in this package
	Kind error
	// Message contains extra detail, such as the mismatching state values
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *AuthFlowError) Error() string {
	var parts []string
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	} else {
		parts = append(parts, "oauth flow error")
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return joinParts(parts, ": ")
}

func (e *AuthFlowError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// OAuthError wraps an OAuth failure surfaced through the API client.
type OAuthError struct {
	// Operation is the client method that failed
	Operation string
	// Err is the underlying flow error
	Err error
}

func (e *OAuthError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("oauth related error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("oauth related error: %v", e.Err)
}

func (e *OAuthError) Unwrap() error {
	return e.Err
}

// StateError indicates an operation was attempted when the client is not ready.
type StateError struct {
	// Operation is the name of the operation that was attempted
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *StateError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" {
		return fmt.Sprintf("state error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("state error: %s", msg)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// RequestError indicates a problem sending a request or receiving its response.
type RequestError struct {
	// Operation is the name of the API operation that failed
	Operation string
	// URL is the URL that was being accessed
	URL string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *RequestError) Error() string {
	// Use Message if available, otherwise use Err.Error()
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" && e.URL != "" {
		return fmt.Sprintf("request error during %s to %s: %s", e.Operation, e.URL, msg)
	} else if e.Operation != "" {
		return fmt.Sprintf("request error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("request error: %s", msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseError indicates the response body was not valid JSON.
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

// InternalError indicates a response whose shape violated what the decoder
// requires, such as a missing post field or a score that is not a uint64.
type InternalError struct {
	// Field is the JSON path that failed, e.g. "data.children.0.data.score"
	Field string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *InternalError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Field != "" {
		return fmt.Sprintf("internal error in library: %s: %s", msg, e.Field)
	}
	return fmt.Sprintf("internal error in library: %s", msg)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from the Reddit API.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// Message is the error message
	Message string
	// Body contains the raw response body (if available)
	Body string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API request failed with status %d: %s, body: %q", e.StatusCode, e.Message, e.Body)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// UserError indicates an invalid use of a request builder, such as a
// parameter that is not allowed for the chosen listing type.
type UserError struct {
	// Field is the builder field that was rejected
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *UserError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}
