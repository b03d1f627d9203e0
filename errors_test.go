package iris

import (
	"net/http"
	"testing"
)

func TestAPIErrorClassification(t *testing.T) {
	body := []byte(`{"message":"nope"}`)

	cases := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusBadRequest, func(t *testing.T, err error) {
			if _, ok := err.(*BadRequestError); !ok {
				t.Fatalf("expected BadRequestError, got %T", err)
			}
		}},
		{http.StatusUnauthorized, func(t *testing.T, err error) {
			if _, ok := err.(*AuthenticationError); !ok {
				t.Fatalf("expected AuthenticationError, got %T", err)
			}
		}},
		{http.StatusForbidden, func(t *testing.T, err error) {
			if _, ok := err.(*AuthenticationError); !ok {
				t.Fatalf("expected AuthenticationError for 403, got %T", err)
			}
		}},
		{http.StatusNotFound, func(t *testing.T, err error) {
			if _, ok := err.(*NotFoundError); !ok {
				t.Fatalf("expected NotFoundError, got %T", err)
			}
		}},
		{http.StatusUnprocessableEntity, func(t *testing.T, err error) {
			if _, ok := err.(*ValidationError); !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		}},
		{http.StatusTooManyRequests, func(t *testing.T, err error) {
			if _, ok := err.(*RateLimitError); !ok {
				t.Fatalf("expected RateLimitError, got %T", err)
			}
		}},
		{http.StatusInternalServerError, func(t *testing.T, err error) {
			if _, ok := err.(*ServerError); !ok {
				t.Fatalf("expected ServerError, got %T", err)
			}
		}},
		{http.StatusServiceUnavailable, func(t *testing.T, err error) {
			if _, ok := err.(*ServerError); !ok {
				t.Fatalf("expected ServerError for 503, got %T", err)
			}
		}},
		{http.StatusTeapot, func(t *testing.T, err error) {
			if _, ok := err.(*APIError); !ok {
				t.Fatalf("expected bare APIError, got %T", err)
			}
		}},
	}
	for _, tc := range cases {
		tc.check(t, apiErrorFromResponse(tc.status, body, nil))
	}
}

func TestValidationErrorCarriesFieldDetails(t *testing.T) {
	body := []byte(`{"message":"validation failed","errors":{"email":["is invalid"]}}`)
	err := apiErrorFromResponse(http.StatusUnprocessableEntity, body, nil)
	valErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if valErr.Message != "validation failed" {
		t.Errorf("message = %q", valErr.Message)
	}
	if _, ok := valErr.Errors["email"]; !ok {
		t.Errorf("expected field errors to include email, got %v", valErr.Errors)
	}
}

func TestRateLimitErrorRetryAfter(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", "17")
	err := apiErrorFromResponse(http.StatusTooManyRequests, nil, headers)
	rateErr, ok := err.(*RateLimitError)
	if !ok {
		t.Fatalf("expected RateLimitError, got %T", err)
	}
	if rateErr.RetryAfter != 17 {
		t.Errorf("RetryAfter = %d, want 17", rateErr.RetryAfter)
	}
}

func TestRateLimitErrorRetryAfterDefault(t *testing.T) {
	err := apiErrorFromResponse(http.StatusTooManyRequests, nil, nil)
	rateErr, ok := err.(*RateLimitError)
	if !ok {
		t.Fatalf("expected RateLimitError, got %T", err)
	}
	if rateErr.RetryAfter != 60 {
		t.Errorf("RetryAfter = %d, want default 60", rateErr.RetryAfter)
	}
}

func TestExtractErrorDetail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message key", `{"message":"bad input"}`, "bad input"},
		{"error key", `{"error":"broken"}`, "broken"},
		{"detail key", `{"detail":"not found"}`, "not found"},
		{"message wins over error", `{"message":"first","error":"second"}`, "first"},
		{"non-json body", "plain text failure", "plain text failure"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := extractErrorDetail(400, []byte(tc.body))
			if got != tc.want {
				t.Errorf("extractErrorDetail = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractErrorDetailEmptyBody(t *testing.T) {
	got, _ := extractErrorDetail(502, nil)
	if got != "HTTP 502" {
		t.Errorf("got %q, want %q", got, "HTTP 502")
	}
}
