package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
)

// Workflow action tags understood by the automation endpoint.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// HTTPDoer defines the http.Client interface subset used by outbound clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type workflowPayload struct {
	Action    string            `json:"action"`
	Client    models.ClientForm `json:"client"`
	Timestamp string            `json:"timestamp"`
}

// WorkflowClient delivers administrative client actions to the external
// automation webhook. The payload travels URL-encoded in the data query
// parameter of a GET request; the response body is not interpreted.
type WorkflowClient struct {
	endpoint string
	client   HTTPDoer
}

// NewWorkflowClient builds a client against the fixed webhook endpoint.
func NewWorkflowClient(endpoint string, client HTTPDoer) *WorkflowClient {
	if client == nil {
		client = NewDefaultHTTPClient(15 * time.Second)
	}
	return &WorkflowClient{endpoint: endpoint, client: client}
}

// SendClientAction serializes {action, client, timestamp} and issues the
// webhook request. Only transport-level success or failure is reported.
func (c *WorkflowClient) SendClientAction(ctx context.Context, action string, form models.ClientForm, ts time.Time) error {
	payload := workflowPayload{
		Action:    action,
		Client:    form,
		Timestamp: ts.UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("workflow: encode payload: %w", err)
	}

	params := url.Values{}
	params.Set("data", string(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("workflow: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("workflow: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("workflow: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// NewDefaultHTTPClient returns an *http.Client with a timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
