package models

// TelemetrySample is one vessel entry from the live monitoring feed.
type TelemetrySample struct {
	VesselID    string   `json:"vessel_id"`
	Active      bool     `json:"active"`
	Temperature *float64 `json:"temperature,omitempty"`
	SetPoint    *float64 `json:"set_point,omitempty"`
}
