// Package formatter renders docket views as terminal tables.
package formatter

import (
	"github.com/charmbracelet/lipgloss"
	model "github.com/okian/docket/internal/domain/model"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill colors a case status.
func StatusPill(status string) string {
	switch model.Status(status) {
	case model.StatusDisposed:
		return StyleGreen.Render(status)
	case model.StatusPending:
		return StyleYellow.Render(status)
	default:
		return StyleDim.Render(status)
	}
}

// JudgeLabel highlights cases no judge could take.
func JudgeLabel(judge string) string {
	switch judge {
	case model.NoJudgeAvailable:
		return StyleRed.Render(judge)
	case "":
		return StyleDim.Render("-")
	default:
		return judge
	}
}
