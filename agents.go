package iris

import (
	"context"
	"fmt"
)

// AgentsAPI manages agent operations.
type AgentsAPI struct {
	client *Client
}

// List returns paginated agents.
func (a *AgentsAPI) List(page, perPage int) (PaginatedResponse[Agent], error) {
	return a.ListWithContext(context.Background(), page, perPage)
}

// ListWithContext returns paginated agents with a caller-supplied context.
func (a *AgentsAPI) ListWithContext(ctx context.Context, page, perPage int) (PaginatedResponse[Agent], error) {
	query := map[string]string{}
	if page > 0 {
		query["page"] = fmt.Sprintf("%d", page)
	}
	if perPage > 0 {
		query["per_page"] = fmt.Sprintf("%d", perPage)
	}
	var resp PaginatedResponse[Agent]
	if err := a.client.http.get(ctx, "/api/v1/agents", query, &resp); err != nil {
		return PaginatedResponse[Agent]{}, err
	}
	return resp, nil
}

// Retrieve fetches an agent.
func (a *AgentsAPI) Retrieve(agentID string) (Agent, error) {
	return a.RetrieveWithContext(context.Background(), agentID)
}

// RetrieveWithContext fetches an agent with a caller-supplied context.
func (a *AgentsAPI) RetrieveWithContext(ctx context.Context, agentID string) (Agent, error) {
	if agentID == "" {
		return Agent{}, fmt.Errorf("agentID cannot be empty")
	}
	var resp Agent
	if err := a.client.http.get(ctx, fmt.Sprintf("/api/v1/agents/%s", agentID), nil, &resp); err != nil {
		return Agent{}, fmt.Errorf("retrieve agent %s: %w", agentID, err)
	}
	return resp, nil
}

// Create creates a new agent.
func (a *AgentsAPI) Create(agent Agent) (Agent, error) {
	return a.CreateWithContext(context.Background(), agent)
}

// CreateWithContext creates a new agent with a caller-supplied context.
func (a *AgentsAPI) CreateWithContext(ctx context.Context, agent Agent) (Agent, error) {
	if agent.Name == "" {
		return Agent{}, fmt.Errorf("agent name cannot be empty")
	}
	var resp Agent
	if err := a.client.http.post(ctx, "/api/v1/agents", agent, &resp); err != nil {
		return Agent{}, err
	}
	return resp, nil
}

// Update partially updates an agent.
func (a *AgentsAPI) Update(agentID string, fields map[string]any) (Agent, error) {
	return a.UpdateWithContext(context.Background(), agentID, fields)
}

// UpdateWithContext partially updates an agent with a caller-supplied context.
func (a *AgentsAPI) UpdateWithContext(ctx context.Context, agentID string, fields map[string]any) (Agent, error) {
	if agentID == "" {
		return Agent{}, fmt.Errorf("agentID cannot be empty")
	}
	var resp Agent
	if err := a.client.http.patch(ctx, fmt.Sprintf("/api/v1/agents/%s", agentID), fields, &resp); err != nil {
		return Agent{}, err
	}
	return resp, nil
}

// Delete removes an agent.
func (a *AgentsAPI) Delete(agentID string) error {
	return a.DeleteWithContext(context.Background(), agentID)
}

// DeleteWithContext removes an agent with a caller-supplied context.
func (a *AgentsAPI) DeleteWithContext(ctx context.Context, agentID string) error {
	if agentID == "" {
		return fmt.Errorf("agentID cannot be empty")
	}
	if err := a.client.http.delete(ctx, fmt.Sprintf("/api/v1/agents/%s", agentID), nil); err != nil {
		return fmt.Errorf("delete agent %s: %w", agentID, err)
	}
	return nil
}

// Run sends a message to an agent and returns its reply payload.
func (a *AgentsAPI) Run(agentID string, input map[string]any) (map[string]any, error) {
	return a.RunWithContext(context.Background(), agentID, input)
}

// RunWithContext sends a message to an agent with a caller-supplied context.
func (a *AgentsAPI) RunWithContext(ctx context.Context, agentID string, input map[string]any) (map[string]any, error) {
	if agentID == "" {
		return nil, fmt.Errorf("agentID cannot be empty")
	}
	var resp map[string]any
	if err := a.client.http.post(ctx, fmt.Sprintf("/api/v1/agents/%s/run", agentID), input, &resp); err != nil {
		return nil, fmt.Errorf("run agent %s: %w", agentID, err)
	}
	return resp, nil
}
