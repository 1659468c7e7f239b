package sources

import (
	"errors"
	"fmt"
)

// ErrTelemetryUnavailable wraps every failure to read the telemetry feed. The
// refresh treats it as "no feed" rather than failing the run.
var ErrTelemetryUnavailable = errors.New("telemetry unavailable")

// RefreshTriggerError is returned when the sheet refresh webhook fails or
// answers with anything but a success status.
type RefreshTriggerError struct {
	Status string // status reported by the webhook, empty on transport errors
	Err    error
}

func (e *RefreshTriggerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("refresh trigger failed: %v", e.Err)
	}
	return fmt.Sprintf("refresh trigger failed: status %q", e.Status)
}

func (e *RefreshTriggerError) Unwrap() error { return e.Err }
