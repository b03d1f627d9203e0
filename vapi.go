package iris

import (
	"context"
	"fmt"
)

// CallsAPI manages VAPI voice calls.
type CallsAPI struct {
	client *Client
}

// StartCallParams describes an outbound call.
type StartCallParams struct {
	AssistantID string         `json:"assistant_id"`
	PhoneNumber string         `json:"phone_number"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// StartCall places an outbound voice call.
func (c *CallsAPI) StartCall(params StartCallParams) (Call, error) {
	return c.StartCallWithContext(context.Background(), params)
}

// StartCallWithContext places a call with a caller-supplied context.
func (c *CallsAPI) StartCallWithContext(ctx context.Context, params StartCallParams) (Call, error) {
	if params.AssistantID == "" {
		return Call{}, fmt.Errorf("assistantID cannot be empty")
	}
	if params.PhoneNumber == "" {
		return Call{}, fmt.Errorf("phoneNumber cannot be empty")
	}
	var resp Call
	if err := c.client.http.post(ctx, "/api/v1/vapi/calls", params, &resp); err != nil {
		return Call{}, err
	}
	return resp, nil
}

// GetCall fetches the state of a call.
func (c *CallsAPI) GetCall(callID string) (Call, error) {
	return c.GetCallWithContext(context.Background(), callID)
}

// GetCallWithContext fetches a call with a caller-supplied context.
func (c *CallsAPI) GetCallWithContext(ctx context.Context, callID string) (Call, error) {
	if callID == "" {
		return Call{}, fmt.Errorf("callID cannot be empty")
	}
	var resp Call
	if err := c.client.http.get(ctx, fmt.Sprintf("/api/v1/vapi/calls/%s", callID), nil, &resp); err != nil {
		return Call{}, fmt.Errorf("get call %s: %w", callID, err)
	}
	return resp, nil
}

// EndCall hangs up an in-progress call.
func (c *CallsAPI) EndCall(callID string) (Call, error) {
	return c.EndCallWithContext(context.Background(), callID)
}

// EndCallWithContext hangs up a call with a caller-supplied context.
func (c *CallsAPI) EndCallWithContext(ctx context.Context, callID string) (Call, error) {
	if callID == "" {
		return Call{}, fmt.Errorf("callID cannot be empty")
	}
	var resp Call
	if err := c.client.http.post(ctx, fmt.Sprintf("/api/v1/vapi/calls/%s/end", callID), nil, &resp); err != nil {
		return Call{}, fmt.Errorf("end call %s: %w", callID, err)
	}
	return resp, nil
}

// ListCalls returns paginated calls.
func (c *CallsAPI) ListCalls(page, perPage int) (PaginatedResponse[Call], error) {
	return c.ListCallsWithContext(context.Background(), page, perPage)
}

// ListCallsWithContext returns paginated calls with a caller-supplied context.
func (c *CallsAPI) ListCallsWithContext(ctx context.Context, page, perPage int) (PaginatedResponse[Call], error) {
	query := map[string]string{}
	if page > 0 {
		query["page"] = fmt.Sprintf("%d", page)
	}
	if perPage > 0 {
		query["per_page"] = fmt.Sprintf("%d", perPage)
	}
	var resp PaginatedResponse[Call]
	if err := c.client.http.get(ctx, "/api/v1/vapi/calls", query, &resp); err != nil {
		return PaginatedResponse[Call]{}, err
	}
	return resp, nil
}
