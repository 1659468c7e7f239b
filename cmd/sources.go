package main

import (
	"context"

	"google.golang.org/api/option"

	"brewery_dashboard/internal/config"
	"brewery_dashboard/internal/service"
	"brewery_dashboard/internal/sources"
)

// These return the service interfaces so a disabled source is a nil
// interface, never a typed nil pointer.

func newSheetsSource(ctx context.Context, c config.SheetsConfig, opts ...option.ClientOption) (service.TableSource, error) {
	client, err := sources.NewSheetsClient(ctx, c.SpreadsheetID, c.Range, c.APIKey, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newTelemetrySource(c config.TelemetryConfig) service.TelemetrySource {
	return sources.NewFrigidClient(c.URL, c.APIKey, c.Timeout)
}

func newRefreshTrigger(c config.TriggerConfig) service.RefreshTrigger {
	return sources.NewTriggerClient(c.URL, c.Timeout)
}
