// Package report renders client state as JSON exports and text tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
	"github.com/litescript/ls-celestial/internal/client"
	"github.com/litescript/ls-celestial/internal/state"
)

// SnapshotExport is the JSON-serializable representation of client state.
type SnapshotExport struct {
	FetchedAt time.Time     `json:"fetched_at"`
	Bodies    []BodyExport  `json:"bodies"`
	Events    []state.Event `json:"events,omitempty"`
}

// BodyExport is a JSON-friendly body summary with derived fields.
type BodyExport struct {
	Name          string            `json:"name"`
	Timestamp     time.Time         `json:"timestamp"`
	Altitude      float64           `json:"altitude_deg"`
	Azimuth       float64           `json:"azimuth_deg"`
	DistanceKM    float64           `json:"distance_km"`
	Constellation string            `json:"constellation"`
	ElevationTier string            `json:"elevation_tier"`
	PhasePercent  *float64          `json:"phase_percent,omitempty"`
	Magnitude     *float64          `json:"magnitude,omitempty"`
	Rise          string            `json:"rise,omitempty"`
	Set           string            `json:"set,omitempty"`
	Transit       string            `json:"transit,omitempty"`
	TierErrors    map[string]string `json:"tier_errors,omitempty"`
}

// TierName labels an elevation tier.
func TierName(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return "high"
	case astro.ElevationMedium:
		return "medium"
	case astro.ElevationLow:
		return "low"
	default:
		return "below"
	}
}

// ExportSnapshot converts a state snapshot to an exportable format.
func ExportSnapshot(snap state.Snapshot) *SnapshotExport {
	export := &SnapshotExport{
		FetchedAt: snap.LastFetch,
		Events:    snap.Events,
	}
	for _, name := range snap.Names() {
		export.Bodies = append(export.Bodies, exportBody(snap.Body(name)))
	}
	return export
}

func exportBody(o *client.Observation) BodyExport {
	b := BodyExport{
		Name:          o.Body,
		Timestamp:     o.Timestamp,
		Altitude:      o.AltitudeDeg,
		Azimuth:       o.AzimuthDeg,
		DistanceKM:    o.DistanceKM,
		Constellation: o.Constellation,
		ElevationTier: TierName(astro.GetElevationTier(o.AltitudeDeg)),
		PhasePercent:  o.PhasePercent,
		Magnitude:     o.Magnitude,
	}
	if o.ConstellationPrecise != "" {
		b.Constellation = o.ConstellationPrecise
	}
	if o.HasObserver {
		b.Rise = o.Rise.String()
		b.Set = o.Set.String()
		b.Transit = o.Transit.String()
	}
	if len(o.TierErrors) > 0 {
		b.TierErrors = o.TierErrors
	}
	return b
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, snap state.Snapshot) {
	fmt.Fprintf(w, "Sky @ %s\n", snap.LastFetch.UTC().Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 92))

	names := snap.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No observations")
		return
	}

	fmt.Fprintf(w, "%-6s %7s %7s %-12s %-12s %-10s %-10s %-10s %s\n",
		"Body", "Alt", "Az", "Distance", "Const", "Rise", "Set", "Transit", "Notes")
	fmt.Fprintln(w, strings.Repeat("─", 92))

	for _, name := range names {
		o := snap.Body(name)
		rise, set, transit := "-", "-", "-"
		if o.HasObserver {
			rise, set, transit = shortEvent(o.Rise), shortEvent(o.Set), shortEvent(o.Transit)
		}
		fmt.Fprintf(w, "%-6s %6.1f° %6.1f° %-12s %-12s %-10s %-10s %-10s %s\n",
			o.Body,
			o.AltitudeDeg,
			o.AzimuthDeg,
			FormatDistance(o.DistanceKM),
			truncateStr(o.Constellation, 12),
			rise, set, transit,
			notes(o),
		)
	}
}

// shortEvent keeps table columns narrow; sentinels collapse to a marker.
func shortEvent(e client.EventTime) string {
	switch {
	case e.Known():
		return e.Time.Format("15:04")
	case strings.Contains(e.Note, "circumpolar"):
		return "never"
	case e.Note != "":
		return "n/a"
	default:
		return "-"
	}
}

func notes(o *client.Observation) string {
	var parts []string
	if o.PhasePercent != nil {
		parts = append(parts, fmt.Sprintf("%.0f%% lit", *o.PhasePercent))
	}
	if o.Magnitude != nil {
		parts = append(parts, fmt.Sprintf("mag %+.1f", *o.Magnitude))
	}
	if o.SpecialPosition != "" {
		parts = append(parts, o.SpecialPosition)
	}
	if failed := o.FailedTiers(); len(failed) > 0 {
		parts = append(parts, "degraded: "+strings.Join(failed, ","))
	}
	return strings.Join(parts, "; ")
}

// WriteEvents writes the last n events, oldest first.
func WriteEvents(w io.Writer, events []state.Event, n int) {
	fmt.Fprintln(w, "Events")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  %-9s %-5s alt %5.1f°", e.Timestamp.UTC().Format("15:04:05"), e.Type, e.Body, e.AltitudeDeg)
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// WriteNowPlaying writes a single status line.
func WriteNowPlaying(w io.Writer, snap state.Snapshot) {
	names := snap.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "no observations")
		return
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		o := snap.Body(name)
		part := fmt.Sprintf("%s %.1f°/%.0f° in %s", o.Body, o.AltitudeDeg, o.AzimuthDeg, o.Constellation)
		if o.PhasePercent != nil {
			part += fmt.Sprintf(" (%.0f%%)", *o.PhasePercent)
		}
		parts = append(parts, part)
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}

// FormatDistance returns a human-readable distance string.
func FormatDistance(km float64) string {
	switch {
	case km <= 0:
		return "N/A"
	case km < 1e6:
		return formatWithUnit(km/1e3, "k km")
	case km < 1e9:
		return formatWithUnit(km/1e6, "M km")
	default:
		return formatWithUnit(km/astro.AU, "AU")
	}
}

func formatWithUnit(value float64, unit string) string {
	switch {
	case value < 10:
		return fmt.Sprintf("%.2f %s", value, unit)
	case value < 100:
		return fmt.Sprintf("%.1f %s", value, unit)
	default:
		return fmt.Sprintf("%.0f %s", value, unit)
	}
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
