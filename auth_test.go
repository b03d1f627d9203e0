package iris

import (
	"errors"
	"testing"
)

func TestResolveAuthStrategy(t *testing.T) {
	cases := []struct {
		path string
		want AuthStrategy
	}{
		{"/api/health", AuthPublic},
		{"/api/v1/leads", AuthPublic},
		{"/api/v1/leads?page=2", AuthPublic},
		{"/api/v1/integrations/providers", AuthPublic},
		{"/api/v1/articles/public/how-to", AuthPublic},
		{"/api/v1/pages/public/landing", AuthPublic},
		// Exact patterns do not match path extensions.
		{"/api/v1/leads/42", AuthUserToken},
		{"/api/v1/leads/aggregation", AuthUserToken},
		{"/api/healthz", AuthUserToken},
		{"/api/v1/articles/public", AuthUserToken},
		{"/api/v1/agents", AuthUserToken},
		{"/api/v1/users/me", AuthUserToken},
	}
	for _, tc := range cases {
		if got := resolveAuthStrategy(tc.path); got != tc.want {
			t.Errorf("resolveAuthStrategy(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestResolveAuthStrategyIsStable(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := resolveAuthStrategy("/api/v1/leads"); got != AuthPublic {
			t.Fatalf("call %d: got %s", i, got)
		}
	}
}

func TestAuthHeadersPublicWithoutKey(t *testing.T) {
	auth := newAuth(Config{})
	h, usedCC, err := auth.Headers(AuthPublic, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usedCC {
		t.Fatalf("public request should not use client credentials")
	}
	if h.Get("Authorization") != "" {
		t.Errorf("expected no Authorization header, got %q", h.Get("Authorization"))
	}
	if h.Get("Accept") != "application/json" {
		t.Errorf("expected Accept header, got %q", h.Get("Accept"))
	}
	if h.Get("User-Agent") == "" {
		t.Errorf("expected User-Agent header")
	}
}

func TestAuthHeadersPublicAttachesKeyWhenPresent(t *testing.T) {
	auth := newAuth(Config{APIKey: "abc"})
	h, _, err := auth.Headers(AuthPublic, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.Get("Authorization"); got != "Bearer abc" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer abc")
	}
}

func TestAuthHeadersIncludeUserID(t *testing.T) {
	auth := newAuth(Config{APIKey: "abc", UserID: 42})
	h, _, err := auth.Headers(AuthUserToken, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.Get("X-User-ID"); got != "42" {
		t.Errorf("X-User-ID = %q, want %q", got, "42")
	}

	auth = newAuth(Config{APIKey: "abc"})
	h, _, err = auth.Headers(AuthUserToken, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.Get("X-User-ID"); got != "" {
		t.Errorf("X-User-ID = %q, want unset without a user id", got)
	}
}

func TestAuthHeadersUserTokenRequiresKey(t *testing.T) {
	auth := newAuth(Config{})
	_, _, err := auth.Headers(AuthUserToken, nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestAuthHeadersStripsBearerPrefix(t *testing.T) {
	auth := newAuth(Config{APIKey: "Bearer abc"})
	h, _, err := auth.Headers(AuthUserToken, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.Get("Authorization"); got != "Bearer abc" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer abc")
	}
}

func TestAuthHeadersClientCredentialsRequiresPair(t *testing.T) {
	auth := newAuth(Config{APIKey: "abc"})
	_, _, err := auth.Headers(AuthClientCredentials, func() (string, int64, error) {
		t.Fatal("fetch should not run without client credentials")
		return "", 0, nil
	})
	if !errors.Is(err, ErrMissingClientCredentials) {
		t.Fatalf("expected ErrMissingClientCredentials, got %v", err)
	}
}
