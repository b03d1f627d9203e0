package iris

import "time"

// PaginatedResponse wraps paginated list results.
type PaginatedResponse[T any] struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Results []T `json:"items"`
}

func (p PaginatedResponse[T]) HasNext() bool {
	if p.PerPage == 0 {
		return false
	}
	return p.Page*p.PerPage < p.Total
}

// Lead is a CRM lead record.
type Lead struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Company   string     `json:"company,omitempty"`
	Title     string     `json:"title,omitempty"`
	Status    string     `json:"status"`
	Source    string     `json:"source,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ScoredLead pairs a lead with a client-side relevance score.
type ScoredLead struct {
	Lead    Lead
	Score   float64
	Matched []string
}

// Agent is a configured AI agent.
type Agent struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Model        string         `json:"model,omitempty"`
	Status       string         `json:"status"`
	Instructions string         `json:"instructions,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// RunStatus enumerates workflow run states.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
)

func (s RunStatus) IsTerminal() bool {
	return s == RunCompleted || s == RunFailed || s == RunCancelled
}

// WorkflowRunState is the backend's status payload for a run.
type WorkflowRunState struct {
	RunID        string         `json:"run_id"`
	Status       RunStatus      `json:"status"`
	Output       map[string]any `json:"output,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
}

// Bloq is a knowledge base.
type Bloq struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	DocumentCount int       `json:"document_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// BloqDocument is a file ingested into a bloq.
type BloqDocument struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// BloqSearchResult is one hit from a bloq search.
type BloqSearchResult struct {
	DocumentID string  `json:"document_id"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
}

// IntegrationProvider describes a connectable third-party service.
type IntegrationProvider struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Categories []string `json:"categories,omitempty"`
}

// Integration is a connected provider account.
type Integration struct {
	ID          string     `json:"id"`
	Provider    string     `json:"provider"`
	Status      string     `json:"status"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
}

// Course is a hosted course resource.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Automation is a trigger/action rule.
type Automation struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Trigger string         `json:"trigger"`
	Actions []string       `json:"actions,omitempty"`
	Enabled bool           `json:"enabled"`
	Config  map[string]any `json:"config,omitempty"`
}

// Call is a VAPI voice call.
type Call struct {
	ID          string     `json:"id"`
	AssistantID string     `json:"assistant_id"`
	PhoneNumber string     `json:"phone_number"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Transcript  string     `json:"transcript,omitempty"`
}
