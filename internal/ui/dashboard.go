package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-celestial/internal/client"
	"github.com/litescript/ls-celestial/internal/report"
	"github.com/litescript/ls-celestial/internal/state"
)

// Styles for the dashboard
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// DashboardModel lists every tracked body.
type DashboardModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashboardModel) UpdateData(snapshot state.Snapshot) DashboardModel {
	m.snapshot = snapshot
	m.lastErr = snapshot.LastError
	if n := len(snapshot.Bodies); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		count := len(m.snapshot.Bodies)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < count-1 {
				m.cursor++
			}
		case "enter":
			if name := m.SelectedBody(); name != "" {
				return m, func() tea.Msg { return DashboardOpenBodyMsg{Body: name} }
			}
		}
	}
	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if len(m.snapshot.Bodies) == 0 {
		if m.lastErr == nil {
			b.WriteString("Waiting for observations...\n")
		}
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-12s %-10s %-12s %-8s %-8s %s",
		"BODY", "ALTITUDE", "AZIMUTH", "CONST", "RISE", "SET", "NOTES")))
	b.WriteString("\n")

	for i, name := range m.snapshot.Names() {
		line := m.renderRow(m.snapshot.Body(name))
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("▶ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m DashboardModel) renderRow(o *client.Observation) string {
	rise, set := "-", "-"
	if o.HasObserver {
		rise, set = clock(o.Rise), clock(o.Set)
	}

	row := rowStyle.Render(fmt.Sprintf("%-6s ", o.Body)) +
		RenderVisibilityBar(o) + " " +
		rowStyle.Render(fmt.Sprintf("%6.1f°   %-12s %-8s %-8s ",
			o.AzimuthDeg, truncate(o.Constellation, 12), rise, set))

	var notes []string
	if o.PhasePercent != nil {
		notes = append(notes, fmt.Sprintf("%.0f%% lit", *o.PhasePercent))
	}
	if o.Magnitude != nil {
		notes = append(notes, fmt.Sprintf("mag %+.1f", *o.Magnitude))
	}
	if o.DistanceKM > 0 {
		notes = append(notes, report.FormatDistance(o.DistanceKM))
	}
	row += rowStyle.Render(strings.Join(notes, " · "))

	if failed := o.FailedTiers(); len(failed) > 0 {
		row += " " + degradedStyle.Render("⚠ "+strings.Join(failed, ","))
	}
	return row
}

func clock(e client.EventTime) string {
	if e.Known() {
		return e.Time.Local().Format("15:04")
	}
	if e.Note != "" {
		return "--:--"
	}
	return "-"
}

// SelectedBody returns the body under the cursor, if any.
func (m DashboardModel) SelectedBody() string {
	names := m.snapshot.Names()
	if m.cursor < 0 || m.cursor >= len(names) {
		return ""
	}
	return names[m.cursor]
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
