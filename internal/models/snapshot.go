package models

import "time"

// What caused a snapshot to be built.
const (
	TriggerStartup    = "startup"
	TriggerTimer      = "timer"
	TriggerManual     = "manual"
	TriggerAdjustment = "adjustment"
)

// Snapshot is one complete reconstruction of every vessel.
type Snapshot struct {
	ID                 string        `json:"id"`
	GeneratedAt        time.Time     `json:"generated_at"`
	Trigger            string        `json:"trigger"`
	TelemetryAvailable bool          `json:"telemetry_available"`
	Vessels            []VesselState `json:"vessels"`
}

// Vessel looks up a vessel by id (case and whitespace insensitive).
func (s Snapshot) Vessel(id string) (VesselState, bool) {
	want := NormalizeVesselID(id)
	for _, v := range s.Vessels {
		if NormalizeVesselID(v.VesselID) == want {
			return v, true
		}
	}
	return VesselState{}, false
}
