// Package styles provides shared lipgloss styles for CLI, TUI and exported
// timeline components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarningStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style

	// Text helpers.
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextMutedStyle          lipgloss.Style

	// Timeline strip.
	HeaderStyle      lipgloss.Style
	HeaderValueStyle lipgloss.Style
	GridEvenStyle    lipgloss.Style
	GridOddStyle     lipgloss.Style
	TodayStyle       lipgloss.Style
	ScrollbarStyle   lipgloss.Style
	ThumbStyle       lipgloss.Style

	// Input bar and help overlay.
	InputPromptStyle       lipgloss.Style
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// ColorPool is used for deterministic color hashing of event bands.
var ColorPool []lipgloss.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TextForegroundStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)
	HeaderValueStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	GridEvenStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Foreground)
	GridOddStyle = lipgloss.NewStyle().
		Background(p.Background).
		Foreground(p.Foreground)
	TodayStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
	ScrollbarStyle = lipgloss.NewStyle().Foreground(p.Surface)
	ThumbStyle = lipgloss.NewStyle().Foreground(p.Muted)

	InputPromptStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(p.Foreground)
	ToastInfoStyle = toastBase.BorderForeground(p.Primary)
	ToastWarningStyle = toastBase.BorderForeground(p.Warning)
	ToastErrorStyle = toastBase.BorderForeground(p.Error)

	ColorPool = []lipgloss.Color{
		p.Primary,
		p.Secondary,
		p.Success,
		p.Warning,
		p.Error,
		Blend(p.Primary, p.Error, 0.5),
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) lipgloss.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// BandStyle returns the fill style for an event band keyed by its
// description.
func BandStyle(key string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(ColorForString(key)).
		Foreground(CurrentPalette.Background)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
