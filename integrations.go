package iris

import (
	"context"
	"fmt"
)

// IntegrationsAPI manages third-party integrations.
type IntegrationsAPI struct {
	client *Client
}

// ListProviders returns the catalog of connectable providers. Public
// endpoint; no credential required.
func (i *IntegrationsAPI) ListProviders() ([]IntegrationProvider, error) {
	return i.ListProvidersWithContext(context.Background())
}

// ListProvidersWithContext returns the provider catalog with a
// caller-supplied context.
func (i *IntegrationsAPI) ListProvidersWithContext(ctx context.Context) ([]IntegrationProvider, error) {
	var resp []IntegrationProvider
	if err := i.client.http.get(ctx, "/api/v1/integrations/providers", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns the user's connected integrations.
func (i *IntegrationsAPI) List() ([]Integration, error) {
	return i.ListWithContext(context.Background())
}

// ListWithContext returns connected integrations with a caller-supplied context.
func (i *IntegrationsAPI) ListWithContext(ctx context.Context) ([]Integration, error) {
	var resp []Integration
	if err := i.client.http.get(ctx, "/api/v1/integrations", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Connect links a provider account using provider-specific credentials.
func (i *IntegrationsAPI) Connect(provider string, credentials map[string]any) (Integration, error) {
	return i.ConnectWithContext(context.Background(), provider, credentials)
}

// ConnectWithContext links a provider with a caller-supplied context.
func (i *IntegrationsAPI) ConnectWithContext(ctx context.Context, provider string, credentials map[string]any) (Integration, error) {
	if provider == "" {
		return Integration{}, fmt.Errorf("provider cannot be empty")
	}
	payload := map[string]any{
		"provider":    provider,
		"credentials": credentials,
	}
	var resp Integration
	if err := i.client.http.post(ctx, "/api/v1/integrations", payload, &resp); err != nil {
		return Integration{}, fmt.Errorf("connect %s: %w", provider, err)
	}
	return resp, nil
}

// Disconnect removes a connected integration.
func (i *IntegrationsAPI) Disconnect(integrationID string) error {
	return i.DisconnectWithContext(context.Background(), integrationID)
}

// DisconnectWithContext removes an integration with a caller-supplied context.
func (i *IntegrationsAPI) DisconnectWithContext(ctx context.Context, integrationID string) error {
	if integrationID == "" {
		return fmt.Errorf("integrationID cannot be empty")
	}
	return i.client.http.delete(ctx, fmt.Sprintf("/api/v1/integrations/%s", integrationID), nil)
}
