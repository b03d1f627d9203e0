package iris

import (
	"context"
	"fmt"
)

// AutomationsAPI manages trigger/action rules.
type AutomationsAPI struct {
	client *Client
}

// List returns all automations.
func (a *AutomationsAPI) List() ([]Automation, error) {
	return a.ListWithContext(context.Background())
}

// ListWithContext returns all automations with a caller-supplied context.
func (a *AutomationsAPI) ListWithContext(ctx context.Context) ([]Automation, error) {
	var resp []Automation
	if err := a.client.http.get(ctx, "/api/v1/automations", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Create adds an automation.
func (a *AutomationsAPI) Create(automation Automation) (Automation, error) {
	return a.CreateWithContext(context.Background(), automation)
}

// CreateWithContext adds an automation with a caller-supplied context.
func (a *AutomationsAPI) CreateWithContext(ctx context.Context, automation Automation) (Automation, error) {
	if automation.Name == "" {
		return Automation{}, fmt.Errorf("automation name cannot be empty")
	}
	if automation.Trigger == "" {
		return Automation{}, fmt.Errorf("automation trigger cannot be empty")
	}
	var resp Automation
	if err := a.client.http.post(ctx, "/api/v1/automations", automation, &resp); err != nil {
		return Automation{}, err
	}
	return resp, nil
}

// Enable switches an automation on.
func (a *AutomationsAPI) Enable(automationID string) error {
	return a.EnableWithContext(context.Background(), automationID)
}

// EnableWithContext switches an automation on with a caller-supplied context.
func (a *AutomationsAPI) EnableWithContext(ctx context.Context, automationID string) error {
	if automationID == "" {
		return fmt.Errorf("automationID cannot be empty")
	}
	return a.client.http.post(ctx, fmt.Sprintf("/api/v1/automations/%s/enable", automationID), nil, nil)
}

// Disable switches an automation off.
func (a *AutomationsAPI) Disable(automationID string) error {
	return a.DisableWithContext(context.Background(), automationID)
}

// DisableWithContext switches an automation off with a caller-supplied context.
func (a *AutomationsAPI) DisableWithContext(ctx context.Context, automationID string) error {
	if automationID == "" {
		return fmt.Errorf("automationID cannot be empty")
	}
	return a.client.http.post(ctx, fmt.Sprintf("/api/v1/automations/%s/disable", automationID), nil, nil)
}

// Delete removes an automation.
func (a *AutomationsAPI) Delete(automationID string) error {
	return a.DeleteWithContext(context.Background(), automationID)
}

// DeleteWithContext removes an automation with a caller-supplied context.
func (a *AutomationsAPI) DeleteWithContext(ctx context.Context, automationID string) error {
	if automationID == "" {
		return fmt.Errorf("automationID cannot be empty")
	}
	return a.client.http.delete(ctx, fmt.Sprintf("/api/v1/automations/%s", automationID), nil)
}
