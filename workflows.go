package iris

import (
	"context"
	"fmt"
	"time"
)

// WorkflowsAPI executes IRIS workflows on the workflow host.
type WorkflowsAPI struct {
	client *Client
}

// Execute starts a workflow run and returns a handle for polling it.
func (w *WorkflowsAPI) Execute(workflowID string, inputs map[string]any) (*WorkflowRun, error) {
	return w.ExecuteWithContext(context.Background(), workflowID, inputs)
}

// ExecuteWithContext starts a workflow run with a caller-supplied context.
func (w *WorkflowsAPI) ExecuteWithContext(ctx context.Context, workflowID string, inputs map[string]any) (*WorkflowRun, error) {
	if workflowID == "" {
		return nil, fmt.Errorf("workflowID cannot be empty")
	}
	var resp struct {
		RunID string `json:"run_id"`
	}
	if err := w.client.http.post(ctx, fmt.Sprintf("/api/v1/workflows/%s/execute", workflowID), inputs, &resp); err != nil {
		return nil, fmt.Errorf("execute workflow %s: %w", workflowID, err)
	}
	return &WorkflowRun{api: w, runID: resp.RunID}, nil
}

// RunStatus fetches the state of a run.
func (w *WorkflowsAPI) RunStatus(runID string) (WorkflowRunState, error) {
	return w.RunStatusWithContext(context.Background(), runID)
}

// RunStatusWithContext fetches run state with a caller-supplied context.
func (w *WorkflowsAPI) RunStatusWithContext(ctx context.Context, runID string) (WorkflowRunState, error) {
	if runID == "" {
		return WorkflowRunState{}, fmt.Errorf("runID cannot be empty")
	}
	var resp WorkflowRunState
	if err := w.client.http.get(ctx, fmt.Sprintf("/api/v1/workflows/runs/%s/status", runID), nil, &resp); err != nil {
		return WorkflowRunState{}, err
	}
	return resp, nil
}

// Cancel aborts a running workflow.
func (w *WorkflowsAPI) Cancel(runID string) error {
	return w.CancelWithContext(context.Background(), runID)
}

// CancelWithContext aborts a run with a caller-supplied context.
func (w *WorkflowsAPI) CancelWithContext(ctx context.Context, runID string) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}
	return w.client.http.post(ctx, fmt.Sprintf("/api/v1/workflows/runs/%s/cancel", runID), nil, nil)
}

// WorkflowRun is a handle to a single workflow execution.
type WorkflowRun struct {
	api   *WorkflowsAPI
	runID string
}

func (r *WorkflowRun) ID() string {
	return r.runID
}

// Status fetches the run's current state.
func (r *WorkflowRun) Status() (WorkflowRunState, error) {
	return r.StatusWithContext(context.Background())
}

// StatusWithContext fetches the run's state with a caller-supplied context.
func (r *WorkflowRun) StatusWithContext(ctx context.Context) (WorkflowRunState, error) {
	return r.api.RunStatusWithContext(ctx, r.runID)
}

// Wait polls until the run reaches a terminal status and returns its
// final state. A zero interval defaults to 2s; a zero timeout waits
// indefinitely (bounded only by ctx).
func (r *WorkflowRun) Wait(interval, timeout time.Duration) (WorkflowRunState, error) {
	return r.WaitContext(context.Background(), interval, timeout)
}

// WaitContext polls for completion with a caller-supplied context.
func (r *WorkflowRun) WaitContext(ctx context.Context, interval, timeout time.Duration) (WorkflowRunState, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		state, err := r.StatusWithContext(ctx)
		if err != nil {
			return WorkflowRunState{}, err
		}
		if state.Status.IsTerminal() {
			if state.Status == RunFailed || state.Status == RunCancelled {
				return state, fmt.Errorf("workflow run %s ended with status %s", r.runID, state.Status)
			}
			return state, nil
		}

		select {
		case <-ctx.Done():
			return WorkflowRunState{}, fmt.Errorf("workflow run %s wait cancelled: %w", r.runID, ctx.Err())
		case <-ticker.C:
		}
	}
}
