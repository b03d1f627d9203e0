package iris

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// tokenExpirySkew is subtracted from the cached token lifetime so a
// token is refreshed before it actually expires on the server.
const tokenExpirySkew = 60 * time.Second

// defaultTokenTTL applies when the token endpoint omits expires_in.
const defaultTokenTTL = 365 * 24 * time.Hour

// tokenFetcher performs the OAuth2 client-credentials grant and returns
// the access token plus its expires_in value in seconds (0 if the
// server omitted it).
type tokenFetcher func() (token string, expiresIn int64, err error)

// tokenCache holds the process-wide client-credentials token. Reads and
// refreshes are serialized; concurrent refreshes collapse into a single
// in-flight grant via singleflight.
type tokenCache struct {
	cfg Config

	mu     sync.Mutex
	tok    string
	expiry time.Time

	group singleflight.Group
}

func newTokenCache(cfg Config) *tokenCache {
	return &tokenCache{cfg: cfg}
}

// token returns a cached token with more than tokenExpirySkew of
// validity remaining, refreshing it through fetch otherwise.
func (c *tokenCache) token(fetch tokenFetcher) (string, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", ErrMissingClientCredentials
	}
	if tok, ok := c.cached(); ok {
		return tok, nil
	}

	v, err, _ := c.group.Do("token", func() (any, error) {
		// A concurrent caller may have refreshed while we waited.
		if tok, ok := c.cached(); ok {
			return tok, nil
		}
		tok, expiresIn, err := fetch()
		if err != nil {
			return nil, err
		}
		ttl := defaultTokenTTL
		if expiresIn > 0 {
			ttl = time.Duration(expiresIn) * time.Second
		}
		c.mu.Lock()
		c.tok = tok
		c.expiry = time.Now().Add(ttl)
		c.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *tokenCache) cached() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tok != "" && time.Until(c.expiry) > tokenExpirySkew {
		return c.tok, true
	}
	return "", false
}

// invalidate drops the cached token. Called after a 401/403 on a
// request that used it, so the next call re-authenticates.
func (c *tokenCache) invalidate() {
	c.mu.Lock()
	c.tok = ""
	c.expiry = time.Time{}
	c.mu.Unlock()
}
