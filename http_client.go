package iris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	mrand "math/rand"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// successBody is what an empty 2xx response decodes to.
var successBody = json.RawMessage(`{"success":true}`)

// RequestOptions carries the per-call knobs of the gateway surface.
type RequestOptions struct {
	// Query parameters appended to the endpoint URL.
	Query map[string]string
	// Body is JSON-serialized when non-nil.
	Body any
	// Headers are merged last and win over computed headers. Setting a
	// key to the empty string removes it, e.g. Content-Type for
	// multipart bodies.
	Headers http.Header
	// AuthOverride forces an auth strategy instead of resolving one
	// from the path. The only way to reach AuthClientCredentials today.
	AuthOverride *AuthStrategy
}

type httpClient struct {
	client    *http.Client
	cfg       Config
	auth      Auth
	logger    Logger
	redactMap map[string]struct{}
}

func newHTTPClient(cfg Config, auth Auth) *httpClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = defaultRetryInitial
	}
	if cfg.RetryMaxInterval == 0 {
		cfg.RetryMaxInterval = defaultRetryMax
	}
	if cfg.RetryMultiplier == 0 {
		cfg.RetryMultiplier = defaultRetryMultiplier
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = defaultMaxIdlePerHost
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = defaultIdleConnTimeout
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}
	if cfg.ProxyURL != nil {
		transport.Proxy = http.ProxyURL(cfg.ProxyURL)
	}

	logger := cfg.Logger
	if cfg.Debug && logger == nil {
		logger = log.New(os.Stdout, "iris-sdk ", log.LstdFlags)
	}

	redactions := map[string]struct{}{}
	for _, h := range cfg.RedactHeaders {
		redactions[strings.ToLower(h)] = struct{}{}
	}

	return &httpClient{
		cfg:  cfg,
		auth: auth,
		client: &http.Client{
			// Bounds each attempt, not the whole retry sequence.
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger:    logger,
		redactMap: redactions,
	}
}

func (c *httpClient) close() {
	if t, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}

// buildURL routes the path to its backend host and appends the query.
func (c *httpClient) buildURL(path string, query map[string]string) (string, error) {
	base := strings.TrimSuffix(routeBaseURL(c.cfg, path), "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	full := base + path
	if len(query) == 0 {
		return full, nil
	}
	u, err := url.Parse(full)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// request performs a JSON exchange and returns the unwrapped payload
// bytes. This is the single entry point every verb helper and resource
// wrapper funnels through.
func (c *httpClient) request(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	var bodyBytes []byte
	headers := http.Header{}
	// Always declared on JSON exchanges, body or not; removable via an
	// empty-value override (the multipart path sets its own).
	headers.Set("Content-Type", "application/json")
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		bodyBytes = encoded
	}
	mergeHeaders(headers, opts.Headers)

	return c.do(ctx, method, path, c.strategyFor(path, opts), headers, bodyBytes, opts.Query)
}

func (c *httpClient) strategyFor(path string, opts *RequestOptions) AuthStrategy {
	if opts != nil && opts.AuthOverride != nil {
		return *opts.AuthOverride
	}
	return resolveAuthStrategy(path)
}

// do runs the retry loop: authenticate once, send, back off on 5xx/429
// and transport errors, classify everything else.
func (c *httpClient) do(ctx context.Context, method, path string, strategy AuthStrategy, headers http.Header, bodyBytes []byte, query map[string]string) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	fullURL, err := c.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	authHeaders, usedClientCreds, err := c.auth.Headers(strategy, func() (string, int64, error) {
		return c.fetchClientCredentialsToken(ctx)
	})
	if err != nil {
		return nil, err
	}

	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var bodyReader io.Reader
		if bodyBytes != nil {
			bodyReader = bytes.NewReader(bodyBytes)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return nil, err
		}

		c.applyHeaders(req, authHeaders, headers)
		c.attachRequestID(req)
		c.runRequestHooks(req)
		c.logRequest(req, bodyBytes, attempt)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = err
			if attempt+1 >= c.cfg.MaxRetries {
				break
			}
			c.logf("retrying after transport error (attempt %d/%d): %v", attempt+1, c.cfg.MaxRetries, err)
			if err := c.sleepWithContext(ctx, c.backoffDuration(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("read response: %w", readErr)
		}

		c.logResponse(req, resp)
		c.runResponseHooks(resp, respBody)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return decodeBody(respBody)
		}

		apiErr := apiErrorFromResponse(resp.StatusCode, respBody, resp.Header)
		lastErr = apiErr

		if usedClientCreds && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			// The cached token is stale or revoked; drop it so the next
			// call re-authenticates. The current call is not replayed.
			c.auth.InvalidateToken()
		}

		if !retryableStatus(resp.StatusCode) || attempt+1 >= c.cfg.MaxRetries {
			return nil, apiErr
		}

		c.logf("retrying after status %d (attempt %d/%d)", resp.StatusCode, attempt+1, c.cfg.MaxRetries)
		if err := c.sleepWithContext(ctx, c.retryDelay(resp, attempt)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// retryableStatus reports whether a response status may be retried:
// server errors and rate limits only. 4xx client errors (including 401,
// 403, 404, 422) terminate immediately.
func retryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// decodeBody normalizes a 2xx payload: empty bodies become
// {"success":true}, invalid JSON is fatal, and a top-level "data"
// envelope is unwrapped. The unwrap rule applies to every verb.
func decodeBody(body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return successBody, nil
	}
	if !json.Valid(body) {
		return nil, &MalformedResponseError{Body: body, Err: fmt.Errorf("invalid JSON")}
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			return data, nil
		}
	}
	return json.RawMessage(body), nil
}

// fetchClientCredentialsToken performs the OAuth2 grant against the
// primary host. It bypasses the auth layer (the grant itself carries no
// bearer token) but reuses the transport and error classification.
func (c *httpClient) fetchClientCredentialsToken(ctx context.Context) (string, int64, error) {
	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
	})
	if err != nil {
		return "", 0, err
	}

	tokenURL := strings.TrimSuffix(c.cfg.APIBaseURL, "/") + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logf("[oauth] POST %s", tokenURL)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, apiErrorFromResponse(resp.StatusCode, body, resp.Header)
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &grant); err != nil {
		return "", 0, &MalformedResponseError{Body: body, Err: err}
	}
	if grant.AccessToken == "" {
		return "", 0, &MalformedResponseError{Body: body, Err: fmt.Errorf("token response missing access_token")}
	}
	return grant.AccessToken, grant.ExpiresIn, nil
}

// upload streams a local file as a multipart request with one part
// named "file". Non-scalar auxiliary fields are JSON-encoded. A missing
// path fails before any network call.
func (c *httpClient) upload(ctx context.Context, path string, file FileUpload, fields map[string]any, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	rc, filename, err := file.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, val := range fields {
		encoded, err := encodeFormField(val)
		if err != nil {
			writer.Close()
			return nil, fmt.Errorf("encode field %s: %w", key, err)
		}
		if err := writer.WriteField(key, encoded); err != nil {
			writer.Close()
			return nil, err
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		writer.Close()
		return nil, err
	}
	if _, err := io.Copy(part, rc); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Content-Type", writer.FormDataContentType())
	mergeHeaders(headers, opts.Headers)

	return c.do(ctx, http.MethodPost, path, c.strategyFor(path, opts), headers, body.Bytes(), opts.Query)
}

// encodeFormField stringifies a multipart auxiliary field: scalars pass
// through, everything else is serialized as JSON text.
func encodeFormField(val any) (string, error) {
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprintf("%v", v), nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
}

// mergeHeaders overlays src onto dst; an empty value deletes the key so
// callers can suppress a computed header.
func mergeHeaders(dst, src http.Header) {
	for k, vals := range src {
		if len(vals) == 1 && vals[0] == "" {
			dst.Del(k)
			continue
		}
		dst[http.CanonicalHeaderKey(k)] = append([]string(nil), vals...)
	}
}

func (c *httpClient) applyHeaders(req *http.Request, authHeaders, headers http.Header) {
	for k, vals := range authHeaders {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	for k, vals := range c.cfg.ExtraHeaders {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	for k, vals := range headers {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vals...)
	}
}

// attachRequestID tags every outbound request for backend-side
// correlation unless the caller already set one.
func (c *httpClient) attachRequestID(req *http.Request) {
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
}

func (c *httpClient) runRequestHooks(req *http.Request) {
	for i, hook := range c.cfg.BeforeRequest {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logf("request hook[%d] panic: %v", i, r)
				}
			}()
			hook(req)
		}()
	}
}

func (c *httpClient) runResponseHooks(resp *http.Response, body []byte) {
	for i, hook := range c.cfg.AfterResponse {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logf("response hook[%d] panic: %v", i, r)
				}
			}()
			hook(resp, body)
		}()
	}
}

func (c *httpClient) logf(format string, args ...any) {
	if c.logger == nil || !c.cfg.Debug {
		return
	}
	c.logger.Printf(format, args...)
}

func (c *httpClient) logRequest(req *http.Request, body []byte, attempt int) {
	if c.logger == nil || !c.cfg.Debug {
		return
	}
	preview := string(body)
	if len(preview) > 512 {
		preview = preview[:512] + "…"
	}
	c.logger.Printf("[request] %s %s attempt=%d headers=%v body=%s", req.Method, req.URL.String(), attempt+1, c.redactedHeaders(req.Header), preview)
}

func (c *httpClient) logResponse(req *http.Request, resp *http.Response) {
	if c.logger == nil || !c.cfg.Debug {
		return
	}
	c.logger.Printf("[response] %s %s status=%d", req.Method, req.URL.String(), resp.StatusCode)
}

func (c *httpClient) redactedHeaders(h http.Header) http.Header {
	if len(c.redactMap) == 0 {
		return h
	}
	cloned := cloneHeaders(h)
	for k := range cloned {
		if _, ok := c.redactMap[strings.ToLower(k)]; ok {
			cloned.Set(k, "[redacted]")
		}
	}
	return cloned
}

// backoffDuration is the exponential delay for the given attempt:
// initial * multiplier^attempt, capped and optionally jittered.
func (c *httpClient) backoffDuration(attempt int) time.Duration {
	factor := math.Pow(c.cfg.RetryMultiplier, float64(attempt))
	delay := time.Duration(float64(c.cfg.RetryInitialInterval) * factor)
	if delay > c.cfg.RetryMaxInterval {
		delay = c.cfg.RetryMaxInterval
	}
	if c.cfg.RetryJitter > 0 {
		jitterFactor := 1 + (mrand.Float64()*2-1)*c.cfg.RetryJitter
		delay = time.Duration(float64(delay) * jitterFactor)
	}
	if delay < time.Millisecond {
		return time.Millisecond
	}
	return delay
}

// retryDelay prefers the server's Retry-After hint verbatim over the
// exponential schedule.
func (c *httpClient) retryDelay(resp *http.Response, attempt int) time.Duration {
	if resp != nil {
		if retryAfter := parseRetryAfter(resp.Header); retryAfter != nil && *retryAfter > 0 {
			return *retryAfter
		}
	}
	return c.backoffDuration(attempt)
}

func (c *httpClient) sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Typed helpers used by the resource wrappers.

func (c *httpClient) doJSON(ctx context.Context, method, path string, opts *RequestOptions, out any) error {
	raw, err := c.request(ctx, method, path, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *httpClient) get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, &RequestOptions{Query: query}, out)
}

func (c *httpClient) post(ctx context.Context, path string, payload any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, &RequestOptions{Body: payload}, out)
}

func (c *httpClient) put(ctx context.Context, path string, payload any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, &RequestOptions{Body: payload}, out)
}

func (c *httpClient) patch(ctx context.Context, path string, payload any, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, &RequestOptions{Body: payload}, out)
}

func (c *httpClient) delete(ctx context.Context, path string, query map[string]string) error {
	return c.doJSON(ctx, http.MethodDelete, path, &RequestOptions{Query: query}, nil)
}
