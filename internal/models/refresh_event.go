package models

import "time"

// Refresh event types.
const (
	EventStart                = "START"
	EventSuccess              = "SUCCESS"
	EventFailure              = "FAILURE"
	EventTelemetryUnavailable = "TELEMETRY_UNAVAILABLE"
	EventTriggerFailed        = "TRIGGER_FAILED"
)

// RefreshEvent is a single refresh audit log entry.
type RefreshEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // START | SUCCESS | FAILURE | TELEMETRY_UNAVAILABLE | TRIGGER_FAILED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
