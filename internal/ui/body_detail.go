package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-celestial/internal/astro"
	"github.com/litescript/ls-celestial/internal/client"
	"github.com/litescript/ls-celestial/internal/report"
	"github.com/litescript/ls-celestial/internal/state"
)

// BodyDetailModel shows everything known about one body.
type BodyDetailModel struct {
	width       int
	height      int
	selected    string
	snapshot    state.Snapshot
	showHistory bool
	animTick    int
}

// NewBodyDetailModel creates a new body detail model.
func NewBodyDetailModel() BodyDetailModel {
	return BodyDetailModel{showHistory: true}
}

// SetSize updates the viewport size.
func (m BodyDetailModel) SetSize(width, height int) BodyDetailModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick updates the animation tick for shimmer effects.
func (m BodyDetailModel) SetAnimTick(tick int) BodyDetailModel {
	m.animTick = tick
	return m
}

// UpdateData updates with new data snapshot.
func (m BodyDetailModel) UpdateData(snapshot state.Snapshot) BodyDetailModel {
	m.snapshot = snapshot
	if m.selected == "" {
		if names := snapshot.Names(); len(names) > 0 {
			m.selected = names[0]
		}
	}
	return m
}

// SelectedBody returns the body being shown.
func (m BodyDetailModel) SelectedBody() string {
	return m.selected
}

// SetSelectedBody picks the body to show.
func (m *BodyDetailModel) SetSelectedBody(name string) {
	m.selected = name
}

// ShowHistory reports whether the altitude sparkline is visible.
func (m BodyDetailModel) ShowHistory() bool {
	return m.showHistory
}

// Update handles messages.
func (m BodyDetailModel) Update(msg tea.Msg) (BodyDetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "[":
			m.step(-1)
		case "right", "]":
			m.step(1)
		case "h":
			m.showHistory = !m.showHistory
		}
	}
	return m, nil
}

func (m *BodyDetailModel) step(delta int) {
	names := m.snapshot.Names()
	if len(names) == 0 {
		return
	}
	idx := 0
	for i, name := range names {
		if name == m.selected {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(names)) % len(names)
	m.selected = names[idx]
}

// View renders the body detail view.
func (m BodyDetailModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderSelector())
	b.WriteString("\n\n")

	obs := m.snapshot.Body(m.selected)
	if obs == nil {
		b.WriteString("  No body selected. Use ←/→ to select.\n")
		return b.String()
	}

	b.WriteString(m.renderDetails(obs))

	if m.showHistory {
		b.WriteString("\n")
		b.WriteString("  " + m.renderAltitudeSparkline())
		b.WriteString("\n")
	}
	return b.String()
}

func (m BodyDetailModel) renderSelector() string {
	var b strings.Builder

	selectorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	unselectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 1)

	b.WriteString(selectorStyle.Render("Body: "))
	b.WriteString("← ")
	for _, name := range m.snapshot.Names() {
		if name == m.selected {
			b.WriteString(selectedStyle.Render(name))
		} else {
			b.WriteString(unselectedStyle.Render(name))
		}
		b.WriteString(" ")
	}
	b.WriteString("→")
	return b.String()
}

func (m BodyDetailModel) renderDetails(o *client.Observation) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var lines []string
	add := func(label, value string) {
		lines = append(lines, "  "+labelStyle.Render(fmt.Sprintf("%-15s", label))+valueStyle.Render(value))
	}

	tier := astro.GetElevationTier(o.AltitudeDeg)
	lines = append(lines, "  "+labelStyle.Render(fmt.Sprintf("%-15s", "Altitude"))+
		colorByTier(tier, fmt.Sprintf("%.2f°", o.AltitudeDeg)))
	add("Azimuth", fmt.Sprintf("%.2f°", o.AzimuthDeg))
	add("Distance", fmt.Sprintf("%s (%.6f AU)", report.FormatDistance(o.DistanceKM), o.DistanceAU))

	constellation := o.Constellation
	if o.ConstellationPrecise != "" && o.ConstellationPrecise != o.Constellation {
		constellation += " (boundary: " + o.ConstellationPrecise + ")"
	}
	add("Constellation", constellation)

	if o.PhasePercent != nil {
		add("Illuminated", fmt.Sprintf("%.1f%%", *o.PhasePercent))
	}
	for _, p := range o.NextPhases {
		add("  "+p.Phase, p.Date)
	}
	if o.Magnitude != nil {
		add("Magnitude", fmt.Sprintf("%+.2f", *o.Magnitude))
	}
	if o.SpecialPosition != "" {
		add("Position", o.SpecialPosition)
	}
	if o.MarsSeason != "" {
		add("Season", o.MarsSeason)
	}

	if o.HasObserver {
		lines = append(lines, "")
		lines = append(lines, "  "+renderEvent("Rise", o.Rise))
		lines = append(lines, "  "+renderEvent("Transit", o.Transit))
		lines = append(lines, "  "+renderEvent("Set", o.Set))
	}

	for _, tier := range o.FailedTiers() {
		lines = append(lines, "  "+degradedStyle.Render(fmt.Sprintf("⚠ %s: %s", tier, o.TierErrors[tier])))
	}

	return strings.Join(lines, "\n") + "\n"
}

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// elevColorLow is the color for low altitude (dark blue).
var elevColorLow = [3]uint8{0x1b, 0x2b, 0x4b}

// elevColorMid is the color for mid altitude (blue).
var elevColorMid = [3]uint8{0x34, 0x78, 0xc0}

// elevColorHigh is the color for high altitude (cyan).
var elevColorHigh = [3]uint8{0x8b, 0xe9, 0xff}

// renderAltitudeSparkline renders the recorded altitude history.
func (m BodyDetailModel) renderAltitudeSparkline() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	history := m.snapshot.Altitudes[m.selected]
	if len(history) < 2 {
		return m.renderShimmerSparkline("Collecting altitude history...")
	}

	samples := resampleAltitude(history, SparklineWidth)
	if len(samples) == 0 {
		return dimStyle.Render("No altitude history")
	}

	var sb strings.Builder
	for _, alt := range samples {
		if alt < 0 {
			alt = 0
		}
		if alt > 90 {
			alt = 90
		}
		t := alt / 90.0

		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}

		r, g, b := interpolateElevColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}

	last := history[len(history)-1]
	span := last.Timestamp.Sub(history[0].Timestamp).Round(time.Minute)
	nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	sb.WriteString(nowStyle.Render(fmt.Sprintf(" now: %.0f°", last.Value)))
	sb.WriteString(dimStyle.Render(" over " + span.String()))

	return sb.String()
}

// renderShimmerSparkline renders a loading animation sparkline.
func (m BodyDetailModel) renderShimmerSparkline(msg string) string {
	var sb strings.Builder

	offset := m.animTick % SparklineWidth
	for i := 0; i < SparklineWidth; i++ {
		dist := (i - offset + SparklineWidth) % SparklineWidth
		gray := 60
		if dist < 8 {
			gray = 60 + dist*8
		}
		color := fmt.Sprintf("#%02x%02x%02x", gray, gray, gray)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▄"))
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sb.WriteString(" ")
	sb.WriteString(dimStyle.Render(msg))
	return sb.String()
}

// interpolateElevColor returns RGB color for altitude value t in [0, 1].
// Gradient: low (dark blue) → mid (blue) → high (cyan).
func interpolateElevColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	from, to, s := elevColorLow, elevColorMid, t*2
	if t >= 0.5 {
		from, to, s = elevColorMid, elevColorHigh, (t-0.5)*2
	}

	mix := func(i int) uint8 {
		return uint8(float64(from[i])*(1-s) + float64(to[i])*s)
	}
	return mix(0), mix(1), mix(2)
}

// resampleAltitude averages samples into a fixed number of buckets.
func resampleAltitude(samples []state.TimeSeries, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}
		if startIdx < 0 {
			startIdx = 0
		}

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].Value
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}
	return result
}
