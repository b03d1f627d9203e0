package iris

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server listener: %v", err)
	}
	server := httptest.NewUnstartedServer(handler)
	server.Listener = ln
	server.Start()
	return server
}

// testConfig points all three backend hosts at the given test server and
// uses fast retry intervals.
func testConfig(serverURL string) Config {
	return Config{
		APIKey:               "test-key",
		APIBaseURL:           serverURL,
		WorkflowBaseURL:      serverURL,
		DefaultBaseURL:       serverURL,
		Timeout:              time.Second,
		MaxRetries:           3,
		RetryInitialInterval: 5 * time.Millisecond,
		RetryMaxInterval:     5 * time.Millisecond,
		RetryMultiplier:      1,
		RetryJitter:          0,
	}
}
