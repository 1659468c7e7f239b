package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"brewery_dashboard/internal/models"
)

// TelemetryFeed is a successfully fetched telemetry list. A nil *TelemetryFeed
// means the feed was unavailable.
type TelemetryFeed struct {
	Samples []models.TelemetrySample
}

// ReconcileTelemetry applies the live feed on top of the sheet-derived states.
// With a feed, vessels that are missing from it or reported inactive are emptied;
// active vessels keep their occupancy. Readings are attached either way.
func ReconcileTelemetry(states []models.VesselState, feed *TelemetryFeed) []models.VesselState {
	out := append([]models.VesselState(nil), states...)
	if feed == nil {
		for i := range out {
			out[i].Telemetry = nil
		}
		return out
	}

	byVessel := mergeSamples(feed.Samples)
	for i, st := range out {
		s, ok := byVessel[models.NormalizeVesselID(st.VesselID)]
		if !ok || !s.Active {
			st = st.Cleared()
		}
		st.Telemetry = nil
		if ok && (s.Temperature != nil || s.SetPoint != nil) {
			st.Telemetry = &models.Telemetry{Temperature: copyPtr(s.Temperature), SetPoint: copyPtr(s.SetPoint)}
		}
		out[i] = st
	}
	return out
}

// mergeSamples folds repeated entries for one vessel: any inactive entry makes
// the vessel inactive and the first reading of each kind is kept.
func mergeSamples(samples []models.TelemetrySample) map[string]models.TelemetrySample {
	m := make(map[string]models.TelemetrySample, len(samples))
	for _, s := range samples {
		key := models.NormalizeVesselID(s.VesselID)
		if key == "" {
			continue
		}
		prev, seen := m[key]
		if !seen {
			m[key] = s
			continue
		}
		prev.Active = prev.Active && s.Active
		if prev.Temperature == nil {
			prev.Temperature = s.Temperature
		}
		if prev.SetPoint == nil {
			prev.SetPoint = s.SetPoint
		}
		m[key] = prev
	}
	return m
}

// Key names the feed has used for each concept over time, in priority order.
var (
	vesselKeys      = []string{"tank", "tankName", "vessel", "vesselId", "fv"}
	nameKeys        = []string{"name"}
	activeKeys      = []string{"active", "isActive", "enabled", "online", "running"}
	temperatureKeys = []string{"temperature", "temp", "currentTemp", "current_temperature"}
	setPointKeys    = []string{"setPoint", "set_point", "setpoint", "targetTemp", "target"}
	nestedValueKeys = []string{"value", "current", "celsius", "temp"}
	wrapperKeys     = []string{"data", "batches", "items", "results"}
)

// ErrMalformedTelemetry is returned when the payload is not a list of objects.
var ErrMalformedTelemetry = errors.New("malformed telemetry payload")

const maxNesting = 4

// DecodeTelemetry parses the raw feed. Items without a vessel id are skipped.
func DecodeTelemetry(raw []byte) ([]models.TelemetrySample, error) {
	var root any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTelemetry, err)
	}

	items, ok := root.([]any)
	if obj, isObj := root.(map[string]any); isObj {
		if v, found := lookup(obj, wrapperKeys); found {
			items, ok = v.([]any)
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of vessels", ErrMalformedTelemetry)
	}

	out := make([]models.TelemetrySample, 0, len(items))
	for _, it := range items {
		obj, isObj := it.(map[string]any)
		if !isObj {
			continue
		}
		id := vesselID(obj)
		if id == "" {
			continue
		}
		s := models.TelemetrySample{VesselID: id, Active: true}
		if v, found := lookup(obj, activeKeys); found {
			if active, known := parseActive(v); known {
				s.Active = active
			}
		}
		if v, found := lookup(obj, temperatureKeys); found {
			if t, ok := parseReading(v, 0); ok {
				s.Temperature = ptr(t)
			}
		}
		if v, found := lookup(obj, setPointKeys); found {
			if t, ok := parseReading(v, 0); ok {
				s.SetPoint = ptr(t)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// lookup is the prioritized key lookup shared by every aliased concept.
func lookup(obj map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// tankCode matches ids such as "FV1", "fvl 3" or "BBT12".
var tankCode = regexp.MustCompile(`^[A-Za-z]{1,4}\s*\d{1,3}$`)

// vesselID reads the tank id. A batch-list feed may put the beer's name under
// "name", so that key only counts when its value looks like a tank code.
func vesselID(obj map[string]any) string {
	if v, ok := lookup(obj, vesselKeys); ok {
		switch id := v.(type) {
		case string:
			return strings.TrimSpace(id)
		case json.Number:
			return id.String()
		}
		return ""
	}
	if v, ok := lookup(obj, nameKeys); ok {
		if id, isStr := v.(string); isStr && tankCode.MatchString(strings.TrimSpace(id)) {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func parseActive(v any) (bool, bool) {
	switch a := v.(type) {
	case bool:
		return a, true
	case json.Number:
		f, err := a.Float64()
		return f != 0, err == nil
	case string:
		switch strings.ToLower(strings.TrimSpace(a)) {
		case "true", "1", "yes", "on", "active", "online", "running":
			return true, true
		case "false", "0", "no", "off", "inactive", "offline", "stopped":
			return false, true
		}
	}
	return false, false
}

// parseReading accepts numbers, numeric strings and nested objects (or JSON text
// encoding an object) holding the number under a value-like key.
func parseReading(v any, depth int) (float64, bool) {
	if depth > maxNesting {
		return 0, false
	}
	switch r := v.(type) {
	case json.Number:
		f, err := r.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case float64:
		return finite(r)
	case string:
		s := strings.TrimSpace(r)
		if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
			var nested any
			dec := json.NewDecoder(strings.NewReader(s))
			dec.UseNumber()
			if err := dec.Decode(&nested); err != nil {
				return 0, false
			}
			return parseReading(nested, depth+1)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	case map[string]any:
		if inner, ok := lookup(r, nestedValueKeys); ok {
			return parseReading(inner, depth+1)
		}
	case []any:
		if len(r) > 0 {
			return parseReading(r[0], depth+1)
		}
	}
	return 0, false
}
