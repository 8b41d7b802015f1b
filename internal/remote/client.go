// Package remote is the client for the out-of-process task API. The only
// contract the store depends on is GET /tasks returning a JSON array of
// task records; anything else counts as "unavailable" and the caller falls
// back to the local cache.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/models"
)

// Client talks to the task API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient returns a client for the API at baseURL. A nil httpc falls back
// to http.DefaultClient; no request timeout is imposed here, cancellation is
// the caller's context.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpc: httpc}
}

// FetchTasks retrieves the authoritative task list.
func (c *Client) FetchTasks(ctx context.Context) ([]models.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tasks", nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build tasks request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", errs.ErrRemoteUnavailable, resp.StatusCode)
	}

	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("%w: unexpected payload: %v", errs.ErrRemoteUnavailable, err)
	}
	return tasks, nil
}
