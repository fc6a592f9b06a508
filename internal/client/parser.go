package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/litescript/ls-celestial/internal/celestial"
)

// Observation is the typed view of one body response used by the terminal
// client. Fields the client does not render stay in Raw.
type Observation struct {
	Body      string
	Timestamp time.Time

	AltitudeDeg float64
	AzimuthDeg  float64
	DistanceKM  float64
	DistanceAU  float64

	Constellation        string
	ConstellationPrecise string

	// Moon only.
	PhasePercent *float64
	NextPhases   []celestial.PhaseEntry

	// Mars only.
	Magnitude       *float64
	SpecialPosition string
	MarsSeason      string

	HasObserver bool
	Rise        EventTime
	Set         EventTime
	Transit     EventTime

	// TierErrors maps "secondary", "tertiary" or "rise_set" to the
	// diagnostic reported by the service.
	TierErrors map[string]string

	Raw map[string]any
}

// EventTime is a rise, set or transit entry. Exactly one of Time and Note
// is set when the record carried the event.
type EventTime struct {
	Time       time.Time
	AzimuthDeg float64
	Note       string
}

// Known reports whether the event carried a time.
func (e EventTime) Known() bool {
	return !e.Time.IsZero()
}

// String renders the event for tables.
func (e EventTime) String() string {
	switch {
	case e.Known():
		return e.Time.Format("15:04 UTC")
	case e.Note != "":
		return e.Note
	default:
		return "-"
	}
}

type wireRecord struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Position  struct {
		Altitude wireAngle `json:"altitude"`
		Azimuth  wireAngle `json:"azimuth"`
	} `json:"position"`
	Distance struct {
		KM float64 `json:"km"`
		AU float64 `json:"au"`
	} `json:"distance"`
	Constellation        string                 `json:"constellation"`
	ConstellationPrecise string                 `json:"constellation_precise"`
	CurrentPhase         *float64               `json:"current_phase"`
	NextPhases           []celestial.PhaseEntry `json:"next_phases"`
	Magnitude            *float64               `json:"magnitude"`
	SpecialPosition      string                 `json:"special_position"`
	MarsSeasons          *struct {
		Season string `json:"season"`
	} `json:"mars_seasons"`
	Observer *celestial.Location `json:"observer"`
}

type wireAngle struct {
	Degrees float64 `json:"degrees"`
}

type wireEvent struct {
	Time       string  `json:"time"`
	AzimuthDeg float64 `json:"azimuth_degrees"`
}

// Parse decodes a body response produced by the service.
func Parse(data []byte) (*Observation, error) {
	var rec wireRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("record has no name")
	}

	obs := &Observation{
		Body:                 rec.Name,
		AltitudeDeg:          rec.Position.Altitude.Degrees,
		AzimuthDeg:           rec.Position.Azimuth.Degrees,
		DistanceKM:           rec.Distance.KM,
		DistanceAU:           rec.Distance.AU,
		Constellation:        rec.Constellation,
		ConstellationPrecise: rec.ConstellationPrecise,
		PhasePercent:         rec.CurrentPhase,
		NextPhases:           rec.NextPhases,
		Magnitude:            rec.Magnitude,
		SpecialPosition:      rec.SpecialPosition,
		HasObserver:          rec.Observer != nil,
		TierErrors:           make(map[string]string),
	}
	if rec.MarsSeasons != nil {
		obs.MarsSeason = rec.MarsSeasons.Season
	}
	if rec.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		obs.Timestamp = ts
	}

	for key, raw := range fields {
		if tier, ok := strings.CutSuffix(key, "_error"); ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil {
				obs.TierErrors[tier] = msg
			}
		}
	}

	if raw, ok := fields[rec.Name+"rise_and_set"]; ok {
		var block map[string]json.RawMessage
		if err := json.Unmarshal(raw, &block); err != nil {
			return nil, fmt.Errorf("unmarshal rise/set: %w", err)
		}
		var err error
		if obs.Rise, err = parseEvent(block["next_"+rec.Name+"rise"]); err != nil {
			return nil, err
		}
		if obs.Set, err = parseEvent(block["next_"+rec.Name+"set"]); err != nil {
			return nil, err
		}
		if obs.Transit, err = parseEvent(block["next_transit"]); err != nil {
			return nil, err
		}
	}

	if err := json.Unmarshal(data, &obs.Raw); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return obs, nil
}

// parseEvent accepts either an event object or a sentinel string.
func parseEvent(raw json.RawMessage) (EventTime, error) {
	if len(raw) == 0 {
		return EventTime{}, nil
	}
	var note string
	if err := json.Unmarshal(raw, &note); err == nil {
		return EventTime{Note: note}, nil
	}
	var ev wireEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return EventTime{}, fmt.Errorf("unmarshal event: %w", err)
	}
	t, err := time.Parse(celestial.EventTimeLayout, ev.Time)
	if err != nil {
		return EventTime{}, fmt.Errorf("parse event time %q: %w", ev.Time, err)
	}
	return EventTime{Time: t, AzimuthDeg: ev.AzimuthDeg}, nil
}

// FailedTiers lists the tiers with diagnostics, sorted.
func (o *Observation) FailedTiers() []string {
	out := make([]string, 0, len(o.TierErrors))
	for tier := range o.TierErrors {
		out = append(out, tier)
	}
	sort.Strings(out)
	return out
}
