package iris

import (
	"context"
	"net/http"
	"testing"
)

func TestClientRequestDynamicPayload(t *testing.T) {
	client, cleanup := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"count":2,"items":["a","b"]}}`))
	}))
	defer cleanup()

	result, err := client.Request(context.Background(), http.MethodGet, "/api/v1/leads/aggregation", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	payload, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", result)
	}
	if payload["count"] != float64(2) {
		t.Errorf("count = %v", payload["count"])
	}
}

func TestClientRequestEmptyBody(t *testing.T) {
	client, cleanup := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer cleanup()

	result, err := client.Delete(context.Background(), "/api/v1/leads/7", nil)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	payload, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", result)
	}
	if payload["success"] != true {
		t.Errorf("payload = %v", payload)
	}
}

func TestNewClientRejectsBadConfig(t *testing.T) {
	if _, err := NewClient("key", 0, "", 0, -1); err == nil {
		t.Fatalf("expected config error for negative retries")
	}
}

func TestClientResourceWiring(t *testing.T) {
	client, err := NewClientWithConfig(testConfig("http://example.com"))
	if err != nil {
		t.Fatalf("NewClientWithConfig: %v", err)
	}
	defer client.Close()

	if client.Leads == nil || client.Agents == nil || client.Workflows == nil ||
		client.Bloqs == nil || client.Integrations == nil || client.Courses == nil ||
		client.Automations == nil || client.Calls == nil {
		t.Fatalf("expected all resource APIs to be wired")
	}
}
