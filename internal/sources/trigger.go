package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TriggerClient asks the sheet's automation webhook to pull fresh form
// responses before a manual refresh.
type TriggerClient struct {
	url  string
	http *http.Client
}

func NewTriggerClient(url string, timeout time.Duration) *TriggerClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &TriggerClient{url: url, http: &http.Client{Timeout: timeout}}
}

type triggerResponse struct {
	Status string `json:"status"`
}

// Trigger posts to the webhook. Failures are *RefreshTriggerError.
func (c *TriggerClient) Trigger(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader("{}"))
	if err != nil {
		return &RefreshTriggerError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &RefreshTriggerError{Err: err}
	}
	defer resp.Body.Close()

	var out triggerResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RefreshTriggerError{Status: out.Status, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if decodeErr != nil {
		return &RefreshTriggerError{Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	switch strings.ToLower(strings.TrimSpace(out.Status)) {
	case "success", "ok":
		return nil
	}
	return &RefreshTriggerError{Status: out.Status}
}
