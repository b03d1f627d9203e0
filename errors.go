package iris

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingAPIKey            = errors.New("API key is required for this endpoint. Provide it or set IRIS_API_KEY")
	ErrMissingClientCredentials = errors.New("OAuth client credentials are required. Set IRIS_CLIENT_ID and IRIS_CLIENT_SECRET")
)

// APIError represents an error returned by the IRIS backend.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
	// Errors carries the backend's structured field-level validation
	// details when present.
	Errors map[string]any
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("iris api error (%d): %s", e.StatusCode, e.Message)
}

type BadRequestError struct{ *APIError }
type AuthenticationError struct{ *APIError }
type NotFoundError struct{ *APIError }

// ValidationError is a 422 with field-level details in Errors.
type ValidationError struct{ *APIError }

// RateLimitError is a 429 surfaced after internal retries are
// exhausted. RetryAfter is the server's hint in seconds (60 when the
// header was absent) for the caller's own backoff decisions.
type RateLimitError struct {
	*APIError
	RetryAfter int
}

type ServerError struct{ *APIError }

// MalformedResponseError marks a non-empty response body that is not
// valid JSON. Never retried.
type MalformedResponseError struct {
	Body []byte
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("iris: malformed response body: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// LocalError is a client-side precondition failure raised before any
// network call, e.g. an upload path that does not exist.
type LocalError struct {
	Message string
	Err     error
}

func (e *LocalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("iris: %s: %v", e.Message, e.Err)
	}
	return "iris: " + e.Message
}

func (e *LocalError) Unwrap() error { return e.Err }

// apiErrorFromResponse maps an HTTP status code and optional JSON body
// to a typed error.
func apiErrorFromResponse(status int, body []byte, headers http.Header) error {
	message, fieldErrors := extractErrorDetail(status, body)

	base := &APIError{
		StatusCode: status,
		Message:    message,
		Body:       body,
		Errors:     fieldErrors,
	}

	switch status {
	case http.StatusBadRequest:
		return &BadRequestError{APIError: base}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{APIError: base}
	case http.StatusNotFound:
		return &NotFoundError{APIError: base}
	case http.StatusUnprocessableEntity:
		return &ValidationError{APIError: base}
	case http.StatusTooManyRequests:
		retryAfter := 60
		if d := parseRetryAfter(headers); d != nil && *d > 0 {
			retryAfter = int(d.Seconds())
		}
		return &RateLimitError{APIError: base, RetryAfter: retryAfter}
	default:
		if status >= 500 {
			return &ServerError{APIError: base}
		}
		return base
	}
}

// extractErrorDetail pulls a human-readable message plus any structured
// validation details from an error payload. The backend sends some mix
// of "message", "error", and "errors"; absence of all three falls back
// to the raw body, then to the status code.
func extractErrorDetail(status int, body []byte) (string, map[string]any) {
	if len(body) == 0 {
		return fmt.Sprintf("HTTP %d", status), nil
	}
	raw := strings.TrimSpace(string(body))

	var parsed map[string]any
	var fieldErrors map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if errs, ok := parsed["errors"].(map[string]any); ok {
			fieldErrors = errs
		}
		for _, key := range []string{"message", "error", "detail"} {
			if s, ok := parsed[key].(string); ok && s != "" {
				return s, fieldErrors
			}
		}
	}
	if raw != "" {
		return raw, fieldErrors
	}
	return fmt.Sprintf("HTTP %d", status), fieldErrors
}

func parseRetryAfter(headers http.Header) *time.Duration {
	if headers == nil {
		return nil
	}
	val := headers.Get("Retry-After")
	if val == "" {
		return nil
	}
	if seconds, err := strconv.Atoi(val); err == nil {
		d := time.Duration(seconds) * time.Second
		return &d
	}
	if t, err := http.ParseTime(val); err == nil {
		d := time.Until(t)
		return &d
	}
	return nil
}
