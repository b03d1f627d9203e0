package iris

import (
	"context"
	"encoding/json"
	"fmt"
)

// BloqsAPI manages knowledge bases.
type BloqsAPI struct {
	client *Client
}

// List returns paginated bloqs.
func (b *BloqsAPI) List(page, perPage int) (PaginatedResponse[Bloq], error) {
	return b.ListWithContext(context.Background(), page, perPage)
}

// ListWithContext returns paginated bloqs with a caller-supplied context.
func (b *BloqsAPI) ListWithContext(ctx context.Context, page, perPage int) (PaginatedResponse[Bloq], error) {
	query := map[string]string{}
	if page > 0 {
		query["page"] = fmt.Sprintf("%d", page)
	}
	if perPage > 0 {
		query["per_page"] = fmt.Sprintf("%d", perPage)
	}
	var resp PaginatedResponse[Bloq]
	if err := b.client.http.get(ctx, "/api/v1/bloqs", query, &resp); err != nil {
		return PaginatedResponse[Bloq]{}, err
	}
	return resp, nil
}

// Retrieve fetches a bloq.
func (b *BloqsAPI) Retrieve(bloqID string) (Bloq, error) {
	return b.RetrieveWithContext(context.Background(), bloqID)
}

// RetrieveWithContext fetches a bloq with a caller-supplied context.
func (b *BloqsAPI) RetrieveWithContext(ctx context.Context, bloqID string) (Bloq, error) {
	if bloqID == "" {
		return Bloq{}, fmt.Errorf("bloqID cannot be empty")
	}
	var resp Bloq
	if err := b.client.http.get(ctx, fmt.Sprintf("/api/v1/bloqs/%s", bloqID), nil, &resp); err != nil {
		return Bloq{}, fmt.Errorf("retrieve bloq %s: %w", bloqID, err)
	}
	return resp, nil
}

// Create creates a bloq.
func (b *BloqsAPI) Create(name, description string) (Bloq, error) {
	return b.CreateWithContext(context.Background(), name, description)
}

// CreateWithContext creates a bloq with a caller-supplied context.
func (b *BloqsAPI) CreateWithContext(ctx context.Context, name, description string) (Bloq, error) {
	if name == "" {
		return Bloq{}, fmt.Errorf("bloq name cannot be empty")
	}
	payload := map[string]any{"name": name}
	if description != "" {
		payload["description"] = description
	}
	var resp Bloq
	if err := b.client.http.post(ctx, "/api/v1/bloqs", payload, &resp); err != nil {
		return Bloq{}, err
	}
	return resp, nil
}

// AddDocument uploads a local file into a bloq. Metadata values may be
// nested; they are JSON-encoded into the form.
func (b *BloqsAPI) AddDocument(bloqID, filePath string, metadata map[string]any) (BloqDocument, error) {
	return b.AddDocumentWithContext(context.Background(), bloqID, filePath, metadata)
}

// AddDocumentWithContext uploads a document with a caller-supplied context.
func (b *BloqsAPI) AddDocumentWithContext(ctx context.Context, bloqID, filePath string, metadata map[string]any) (BloqDocument, error) {
	if bloqID == "" {
		return BloqDocument{}, fmt.Errorf("bloqID cannot be empty")
	}
	raw, err := b.client.http.upload(ctx, fmt.Sprintf("/api/v1/bloqs/%s/documents", bloqID), FileUpload{Path: filePath}, metadata, nil)
	if err != nil {
		return BloqDocument{}, err
	}
	var resp BloqDocument
	if err := json.Unmarshal(raw, &resp); err != nil {
		return BloqDocument{}, &MalformedResponseError{Body: raw, Err: err}
	}
	return resp, nil
}

// Search queries a bloq's documents.
func (b *BloqsAPI) Search(bloqID, query string, limit int) ([]BloqSearchResult, error) {
	return b.SearchWithContext(context.Background(), bloqID, query, limit)
}

// SearchWithContext queries documents with a caller-supplied context.
func (b *BloqsAPI) SearchWithContext(ctx context.Context, bloqID, query string, limit int) ([]BloqSearchResult, error) {
	if bloqID == "" {
		return nil, fmt.Errorf("bloqID cannot be empty")
	}
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	payload := map[string]any{"query": query}
	if limit > 0 {
		payload["limit"] = limit
	}
	var resp []BloqSearchResult
	if err := b.client.http.post(ctx, fmt.Sprintf("/api/v1/bloqs/%s/search", bloqID), payload, &resp); err != nil {
		return nil, fmt.Errorf("search bloq %s: %w", bloqID, err)
	}
	return resp, nil
}
