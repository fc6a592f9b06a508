package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-celestial/internal/astro"
	"github.com/litescript/ls-celestial/internal/client"
)

// Visibility display colors
const (
	colorVisHigh   = "#7CFC00" // Lawn green - high altitude
	colorVisMedium = "#FFD700" // Gold - medium altitude
	colorVisLow    = "#FF6347" // Tomato - low altitude
	colorVisNone   = "#444444" // Dark gray - below horizon
)

// RenderVisibilityBar renders a compact bar for a body's altitude.
// Format: moon ██░░ 23°
func RenderVisibilityBar(obs *client.Observation) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	if obs == nil {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		return dimStyle.Render("····")
	}

	tier := astro.GetElevationTier(obs.AltitudeDeg)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier))).Render(tierToBar(tier))
	return bar + labelStyle.Render(fmt.Sprintf(" %5.1f°", obs.AltitudeDeg))
}

// tierToBar converts elevation tier to a 4-character bar representation.
func tierToBar(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return "████"
	case astro.ElevationMedium:
		return "██░░"
	case astro.ElevationLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an elevation tier.
func tierToColor(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return colorVisHigh
	case astro.ElevationMedium:
		return colorVisMedium
	case astro.ElevationLow:
		return colorVisLow
	default:
		return colorVisNone
	}
}

// colorByTier applies tier-based coloring to text.
func colorByTier(tier astro.ElevationTier, text string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(text)
}

// renderEvent formats a rise, set or transit entry. Sentinel notes are
// shown dimmed since they carry no time.
func renderEvent(label string, e client.EventTime) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)

	line := labelStyle.Render(fmt.Sprintf("%-8s", label))
	if !e.Known() {
		return line + dimStyle.Render(e.String())
	}
	return line + fmt.Sprintf("%s  az %5.1f°", e.Time.Local().Format("15:04"), e.AzimuthDeg)
}
