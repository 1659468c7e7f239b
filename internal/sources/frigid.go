package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"brewery_dashboard/internal/engine"
	"brewery_dashboard/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxTelemetryBytes  = 4 << 20 // 4 MB
)

// FrigidClient polls the fermentation temperature controller's API.
type FrigidClient struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewFrigidClient(url, apiKey string, timeout time.Duration) *FrigidClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &FrigidClient{url: url, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

// FetchTelemetry returns one sample per vessel reported by the controller. Every
// error wraps ErrTelemetryUnavailable.
func (c *FrigidClient) FetchTelemetry(ctx context.Context) ([]models.TelemetrySample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTelemetryUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTelemetryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrTelemetryUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTelemetryBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTelemetryUnavailable, err)
	}
	samples, err := engine.DecodeTelemetry(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTelemetryUnavailable, err)
	}
	return samples, nil
}
