package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a Summarizer backed by an HTTP text generation service. The
// service accepts the match context plus constraints and answers with a
// Brief-shaped JSON document.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// generateRequest is the wire format sent to the text service.
type generateRequest struct {
	Match       MatchContext `json:"match"`
	Constraints Constraints  `json:"constraints"`
}

// NewClient creates a summarizer client. httpClient may be nil.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			// Text generation is slow compared to data calls.
			Timeout: 60 * time.Second,
		}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Summarize requests one brief from the service.
func (c *Client) Summarize(ctx context.Context, match MatchContext, constraints Constraints) (Brief, error) {
	payload, err := json.Marshal(generateRequest{Match: match, Constraints: constraints})
	if err != nil {
		return Brief{}, fmt.Errorf("marshal summary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/summaries", bytes.NewBuffer(payload))
	if err != nil {
		return Brief{}, fmt.Errorf("create summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Brief{}, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Brief{}, fmt.Errorf("read summary response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Brief{}, fmt.Errorf("summary service returned %d: %s", resp.StatusCode, string(body))
	}

	var brief Brief
	if err := json.Unmarshal(body, &brief); err != nil {
		return Brief{}, fmt.Errorf("decode summary response: %w", err)
	}
	return brief, nil
}
