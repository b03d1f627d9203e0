package iris

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// LeadsAPI manages CRM lead operations.
type LeadsAPI struct {
	client *Client
}

// ListLeadsParams filters and pages a lead listing.
type ListLeadsParams struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}

// List returns paginated leads.
func (l *LeadsAPI) List(params *ListLeadsParams) (PaginatedResponse[Lead], error) {
	return l.ListWithContext(context.Background(), params)
}

// ListWithContext returns paginated leads with a caller-supplied context.
func (l *LeadsAPI) ListWithContext(ctx context.Context, params *ListLeadsParams) (PaginatedResponse[Lead], error) {
	query := map[string]string{}
	if params != nil {
		if params.Page > 0 {
			query["page"] = fmt.Sprintf("%d", params.Page)
		}
		if params.PerPage > 0 {
			query["per_page"] = fmt.Sprintf("%d", params.PerPage)
		}
		if params.Status != "" {
			query["status"] = params.Status
		}
		if params.Search != "" {
			query["search"] = params.Search
		}
	}
	var resp PaginatedResponse[Lead]
	if err := l.client.http.get(ctx, "/api/v1/leads", query, &resp); err != nil {
		return PaginatedResponse[Lead]{}, err
	}
	return resp, nil
}

// Retrieve fetches a lead by id.
func (l *LeadsAPI) Retrieve(leadID int64) (Lead, error) {
	return l.RetrieveWithContext(context.Background(), leadID)
}

// RetrieveWithContext fetches a lead with a caller-supplied context.
func (l *LeadsAPI) RetrieveWithContext(ctx context.Context, leadID int64) (Lead, error) {
	if leadID <= 0 {
		return Lead{}, fmt.Errorf("leadID must be positive")
	}
	var resp Lead
	if err := l.client.http.get(ctx, fmt.Sprintf("/api/v1/leads/%d", leadID), nil, &resp); err != nil {
		return Lead{}, fmt.Errorf("retrieve lead %d: %w", leadID, err)
	}
	return resp, nil
}

// Create adds a lead.
func (l *LeadsAPI) Create(lead Lead) (Lead, error) {
	return l.CreateWithContext(context.Background(), lead)
}

// CreateWithContext adds a lead with a caller-supplied context.
func (l *LeadsAPI) CreateWithContext(ctx context.Context, lead Lead) (Lead, error) {
	var resp Lead
	if err := l.client.http.post(ctx, "/api/v1/leads", lead, &resp); err != nil {
		return Lead{}, err
	}
	return resp, nil
}

// Update partially updates a lead.
func (l *LeadsAPI) Update(leadID int64, fields map[string]any) (Lead, error) {
	return l.UpdateWithContext(context.Background(), leadID, fields)
}

// UpdateWithContext partially updates a lead with a caller-supplied context.
func (l *LeadsAPI) UpdateWithContext(ctx context.Context, leadID int64, fields map[string]any) (Lead, error) {
	if leadID <= 0 {
		return Lead{}, fmt.Errorf("leadID must be positive")
	}
	var resp Lead
	if err := l.client.http.patch(ctx, fmt.Sprintf("/api/v1/leads/%d", leadID), fields, &resp); err != nil {
		return Lead{}, err
	}
	return resp, nil
}

// Delete removes a lead.
func (l *LeadsAPI) Delete(leadID int64) error {
	return l.DeleteWithContext(context.Background(), leadID)
}

// DeleteWithContext removes a lead with a caller-supplied context.
func (l *LeadsAPI) DeleteWithContext(ctx context.Context, leadID int64) error {
	if leadID <= 0 {
		return fmt.Errorf("leadID must be positive")
	}
	if err := l.client.http.delete(ctx, fmt.Sprintf("/api/v1/leads/%d", leadID), nil); err != nil {
		return fmt.Errorf("delete lead %d: %w", leadID, err)
	}
	return nil
}

// SendEmailParams describes an outreach email.
type SendEmailParams struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	// AgentID optionally delegates drafting to an agent.
	AgentID string `json:"agent_id,omitempty"`
}

// SendEmail sends an outreach email to a lead.
func (l *LeadsAPI) SendEmail(leadID int64, params SendEmailParams) error {
	return l.SendEmailWithContext(context.Background(), leadID, params)
}

// SendEmailWithContext sends an outreach email with a caller-supplied context.
func (l *LeadsAPI) SendEmailWithContext(ctx context.Context, leadID int64, params SendEmailParams) error {
	if leadID <= 0 {
		return fmt.Errorf("leadID must be positive")
	}
	if params.Subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}
	return l.client.http.post(ctx, fmt.Sprintf("/api/v1/leads/%d/outreach/send-email", leadID), params, nil)
}

// Score ranks leads by keyword overlap against their name, company,
// title, and tags. Purely client-side; the score is the matched share
// of the supplied keywords.
func (l *LeadsAPI) Score(leads []Lead, keywords []string) []ScoredLead {
	scored := make([]ScoredLead, 0, len(leads))
	for _, lead := range leads {
		haystack := strings.ToLower(strings.Join(append([]string{lead.Name, lead.Company, lead.Title}, lead.Tags...), " "))
		var matched []string
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(haystack, kw) {
				matched = append(matched, kw)
			}
		}
		score := 0.0
		if len(keywords) > 0 {
			score = float64(len(matched)) / float64(len(keywords))
		}
		scored = append(scored, ScoredLead{Lead: lead, Score: score, Matched: matched})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}
