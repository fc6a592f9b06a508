// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-celestial/internal/state"
	"github.com/litescript/ls-celestial/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewBody
	ViewEvents
)

const viewCount = 3

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals new observations are available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a fetch error.
	ErrorMsg struct {
		Error error
	}

	// DashboardOpenBodyMsg requests opening the body view.
	DashboardOpenBodyMsg struct {
		Body string
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state  *state.Manager
	source string

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	dashboard DashboardModel
	detail    BodyDetailModel
	events    EventsModel

	snapshot state.Snapshot
}

// New creates a new root UI model. source names where observations come
// from and is shown under the logo.
func New(stateMgr *state.Manager, source string) Model {
	return Model{
		state:     stateMgr,
		source:    source,
		viewMode:  ViewDashboard,
		dashboard: NewDashboardModel(),
		detail:    NewBodyDetailModel(),
		events:    NewEventsModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.dashboard.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "b":
			m.viewMode = ViewBody
		case "3", "e":
			m.viewMode = ViewEvents
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo and tabs take ~9 lines, footer ~2
		contentHeight := msg.Height - 11
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.detail = m.detail.SetSize(msg.Width, contentHeight)
		m.events = m.events.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if m.state != nil {
			m.setSnapshot(m.state.Snapshot())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.detail = m.detail.SetAnimTick(m.animTick)

	case DataUpdateMsg:
		m.setSnapshot(msg.Snapshot)

	case DashboardOpenBodyMsg:
		m.detail.SetSelectedBody(msg.Body)
		m.viewMode = ViewBody

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) setSnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.dashboard = m.dashboard.UpdateData(snap)
	m.detail = m.detail.UpdateData(snap)
	m.events = m.events.UpdateData(snap)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewBody:
		m.detail, cmd = m.detail.Update(msg)
	case ViewEvents:
		m.events, cmd = m.events.Update(msg)
	}
	return cmd
}

// ActiveView returns the view currently shown.
func (m Model) ActiveView() ViewMode {
	return m.viewMode
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewBody:
		content = m.detail.View()
	case ViewEvents:
		content = m.events.View()
	}

	return m.renderLogo() + m.renderTabs() + "\n\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ╻  ┏━┓   ┏━╸┏━╸╻  ┏━╸┏━┓╺┳╸╻┏━┓╻  `,
		`  ┃  ┗━┓╺━╸┃  ┣╸ ┃  ┣╸ ┗━┓ ┃ ┃┣━┫┃  `,
		`  ┗━╸┗━┛   ┗━╸┗━╸┗━╸┗━╸┗━┛ ╹ ╹╹ ╹┗━╸`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	tagline := fmt.Sprintf("  Moon · Mars · v%s", version.Version)
	if m.source != "" {
		tagline += " · " + m.source
	}
	b.WriteString(muted.Render(tagline))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// silver on the left fading to rust red on the right, dimmer toward the
// bottom row.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Silver (#C0C8D8) -> Amber (#E0A060) -> Rust (#C1440E)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 192 + t*(224-192)
		g = 200 + t*(160-200)
		b = 216 + t*(96-216)
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 224 + t*(193-224)
		g = 160 + t*(68-160)
		b = 96 + t*(14-96)
	}

	brightness := 1.0 - (yRatio * 0.4)
	return fmt.Sprintf("#%02X%02X%02X", clamp8(r*brightness), clamp8(g*brightness), clamp8(b*brightness))
}

func clamp8(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Dashboard", "[2] Body", "[3] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#C1440E")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A060"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastFetch.IsZero():
		countdown := time.Until(m.snapshot.NextRefresh).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" refresh in %ds", int(countdown.Seconds())))
		if m.snapshot.FetchDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.FetchDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" Waiting for data...")
	}

	var help string
	switch m.viewMode {
	case ViewBody:
		help = "←/→: body | h: history"
	case ViewEvents:
		help = "↑↓: scroll"
	default:
		help = "↑↓: navigate | enter: details | tab: switch view"
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help+" | q: quit")
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
