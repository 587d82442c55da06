// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/histline/internal/core/styles"
)

const helpKeyWidth = 10

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	var lines []string
	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title))
		}
		for _, entry := range section.Entries {
			lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TextForegroundBoldStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.HelpDialogHelpStyle.Render("esc/? close"),
	)

	return styles.HelpDialogModalStyle.Render(content)
}

// Overlay renders the dialog centered over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()
	x := (width - lipgloss.Width(modal)) / 2
	y := (height - lipgloss.Height(modal)) / 2
	return Overlay(background, modal, x, y)
}

func formatKeyDesc(key, desc string) string {
	pad := max(helpKeyWidth-lipgloss.Width(key), 1)
	return styles.TextPrimaryBoldStyle.Render(key+strings.Repeat(" ", pad)) +
		styles.TextForegroundStyle.Render(desc)
}
