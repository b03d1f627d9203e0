package iris

import (
	"net/http"
	"strconv"
	"strings"
)

const userAgent = "iris-golang/0.1.0"

// AuthStrategy names the credential attached to an outbound request.
type AuthStrategy int

const (
	// AuthPublic endpoints accept anonymous calls. A configured API key
	// is still attached for the higher rate-limit tier, but is never
	// required.
	AuthPublic AuthStrategy = iota
	// AuthUserToken endpoints require the bearer API key.
	AuthUserToken
	// AuthClientCredentials endpoints use a short-lived OAuth2 token.
	// No path rule resolves to this strategy today; it is reachable only
	// through RequestOptions.AuthOverride.
	AuthClientCredentials
)

func (s AuthStrategy) String() string {
	switch s {
	case AuthPublic:
		return "public"
	case AuthUserToken:
		return "user_token"
	case AuthClientCredentials:
		return "client_credentials"
	default:
		return "unknown"
	}
}

// publicPatterns is the allow-list of endpoints callable without a
// credential. A trailing "/" makes the pattern a prefix match; anything
// else matches exactly or exactly-up-to-a-query-string.
var publicPatterns = []string{
	"/api/health",
	"/api/v1/leads",
	"/api/v1/integrations/providers",
	"/api/v1/articles/public/",
	"/api/v1/pages/public/",
}

// resolveAuthStrategy classifies an endpoint path. It is a pure function
// of the path: same input, same answer, no I/O.
func resolveAuthStrategy(path string) AuthStrategy {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for _, pattern := range publicPatterns {
		if strings.HasSuffix(pattern, "/") {
			if strings.HasPrefix(path, pattern) {
				return AuthPublic
			}
			continue
		}
		if path == pattern || strings.HasPrefix(path, pattern+"?") {
			return AuthPublic
		}
	}
	return AuthUserToken
}

// Auth builds the Authorization and identity headers for a request.
type Auth struct {
	cfg    Config
	tokens *tokenCache
}

func newAuth(cfg Config) Auth {
	return Auth{cfg: cfg, tokens: newTokenCache(cfg)}
}

// bearerToken returns the API key with any accidental "Bearer " prefix
// stripped.
func (a Auth) bearerToken() string {
	key := a.cfg.APIKey
	if strings.HasPrefix(strings.ToLower(key), "bearer ") {
		key = strings.TrimSpace(key[7:])
	}
	return key
}

// Headers resolves the credential for the given strategy and returns the
// base request headers. For AuthUserToken a missing API key is a fatal
// configuration error, raised before any network call. The returned bool
// reports whether a cached client-credentials token was used; the
// executor needs that to invalidate the cache on a 401/403.
func (a Auth) Headers(strategy AuthStrategy, fetch tokenFetcher) (http.Header, bool, error) {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("User-Agent", userAgent)
	if a.cfg.UserID != 0 {
		h.Set("X-User-ID", strconv.FormatInt(a.cfg.UserID, 10))
	}

	switch strategy {
	case AuthPublic:
		if key := a.bearerToken(); key != "" {
			h.Set("Authorization", "Bearer "+key)
		}
	case AuthUserToken:
		key := a.bearerToken()
		if key == "" {
			return nil, false, ErrMissingAPIKey
		}
		h.Set("Authorization", "Bearer "+key)
	case AuthClientCredentials:
		token, err := a.tokens.token(fetch)
		if err != nil {
			return nil, false, err
		}
		h.Set("Authorization", "Bearer "+token)
		return h, true, nil
	}
	return h, false, nil
}

// InvalidateToken drops the cached client-credentials token so the next
// request performs a fresh grant.
func (a Auth) InvalidateToken() {
	a.tokens.invalidate()
}
