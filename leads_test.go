package iris

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, func()) {
	t.Helper()
	server := newTestServer(t, handler)
	client, err := NewClientWithConfig(testConfig(server.URL))
	if err != nil {
		server.Close()
		t.Fatalf("NewClientWithConfig: %v", err)
	}
	return client, func() {
		client.Close()
		server.Close()
	}
}

func TestLeadsList(t *testing.T) {
	client, cleanup := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/leads" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "qualified" {
			t.Errorf("status = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "2" {
			t.Errorf("per_page = %q", got)
		}
		_, _ = w.Write([]byte(`{"data":{"total":3,"page":1,"per_page":2,"items":[
			{"id":1,"name":"Ada","email":"ada@example.com"},
			{"id":2,"name":"Grace","email":"grace@example.com"}
		]}}`))
	}))
	defer cleanup()

	page, err := client.Leads.ListWithContext(context.Background(), &ListLeadsParams{Status: "qualified", PerPage: 2})
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if page.Total != 3 || len(page.Results) != 2 {
		t.Fatalf("unexpected page: total=%d results=%d", page.Total, len(page.Results))
	}
	if page.Results[0].Name != "Ada" {
		t.Errorf("first lead = %q", page.Results[0].Name)
	}
	if !page.HasNext() {
		t.Errorf("expected HasNext for partial page")
	}
}

func TestLeadsCreateAndUpdate(t *testing.T) {
	client, cleanup := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/leads":
			var lead Lead
			if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
				t.Errorf("decode body: %v", err)
			}
			lead.ID = 7
			_ = json.NewEncoder(w).Encode(map[string]any{"data": lead})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/leads/7":
			var fields map[string]any
			if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
				t.Errorf("decode body: %v", err)
			}
			if fields["status"] != "won" {
				t.Errorf("fields = %v", fields)
			}
			_, _ = w.Write([]byte(`{"data":{"id":7,"status":"won"}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer cleanup()

	created, err := client.Leads.CreateWithContext(context.Background(), Lead{Name: "Ada"})
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("created.ID = %d", created.ID)
	}

	updated, err := client.Leads.UpdateWithContext(context.Background(), 7, map[string]any{"status": "won"})
	if err != nil {
		t.Fatalf("update lead: %v", err)
	}
	if updated.Status != "won" {
		t.Errorf("updated.Status = %q", updated.Status)
	}
}

func TestLeadsRetrieveValidatesID(t *testing.T) {
	client, cleanup := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s %s", r.Method, r.URL.Path)
	}))
	defer cleanup()

	if _, err := client.Leads.Retrieve(0); err == nil {
		t.Fatalf("expected validation error for zero id")
	}
	if _, err := client.Leads.Retrieve(-3); err == nil {
		t.Fatalf("expected validation error for negative id")
	}
}

func TestLeadsSendEmailRequiresSubject(t *testing.T) {
	client, cleanup := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s %s", r.Method, r.URL.Path)
	}))
	defer cleanup()

	err := client.Leads.SendEmail(1, SendEmailParams{Body: "hi"})
	if err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestLeadsScore(t *testing.T) {
	api := &LeadsAPI{}
	leads := []Lead{
		{ID: 1, Name: "Ada", Company: "Fintech Labs", Title: "Director of Payments"},
		{ID: 2, Name: "Grace", Company: "Bakery", Title: "Owner"},
		{ID: 3, Name: "Linus", Company: "Fintech Co", Title: "Engineer", Tags: []string{"payments"}},
	}

	scored := api.Score(leads, []string{"fintech", "director", "payments"})
	if len(scored) != 3 {
		t.Fatalf("expected all leads scored, got %d", len(scored))
	}
	if scored[0].Lead.ID != 1 {
		t.Errorf("expected full match first, got lead %d", scored[0].Lead.ID)
	}
	if scored[0].Score != 1.0 {
		t.Errorf("top score = %v", scored[0].Score)
	}
	if scored[1].Lead.ID != 3 {
		t.Errorf("expected partial match second, got lead %d", scored[1].Lead.ID)
	}
	if scored[2].Score != 0 {
		t.Errorf("expected no-match score 0, got %v", scored[2].Score)
	}
	if len(scored[1].Matched) != 2 {
		t.Errorf("matched keywords = %v", scored[1].Matched)
	}
}
