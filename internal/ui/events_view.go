package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-celestial/internal/state"
)

var eventColors = map[state.EventType]string{
	state.EventMoonrise: "#8BE9FF",
	state.EventMarsrise: "#FF7F50",
	state.EventMoonset:  "#5A6B8C",
	state.EventMarsset:  "#8C5A4A",
	state.EventDegraded: "214",
}

// EventsModel lists horizon crossings and tier failures, newest first.
type EventsModel struct {
	width  int
	height int
	offset int
	events []state.Event
}

// NewEventsModel creates a new events view.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m EventsModel) UpdateData(snapshot state.Snapshot) EventsModel {
	m.events = snapshot.Events
	if m.offset > len(m.events) {
		m.offset = 0
	}
	return m
}

// Update handles messages.
func (m EventsModel) Update(msg tea.Msg) (EventsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.events)-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

// View renders the event log.
func (m EventsModel) View() string {
	if len(m.events) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
		return "  " + dimStyle.Render("No events yet. Rises, sets and tier failures appear here.") + "\n"
	}

	rows := m.height
	if rows <= 0 {
		rows = len(m.events)
	}

	var b strings.Builder
	shown := 0
	for i := len(m.events) - 1 - m.offset; i >= 0 && shown < rows; i-- {
		b.WriteString("  " + renderEventLine(m.events[i]) + "\n")
		shown++
	}
	return b.String()
}

func renderEventLine(e state.Event) string {
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	color, ok := eventColors[e.Type]
	if !ok {
		color = "252"
	}
	typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	line := timeStyle.Render(e.Timestamp.Local().Format("Jan 02 15:04:05")) + "  " +
		typeStyle.Render(fmt.Sprintf("%-9s", e.Type)) +
		fmt.Sprintf(" %-5s alt %5.1f°", e.Body, e.AltitudeDeg)
	if e.Detail != "" {
		line += "  " + e.Detail
	}
	return line
}
