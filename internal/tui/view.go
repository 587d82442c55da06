package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/histline/internal/core/styles"
)

// chromeHeight is the header, scrollbar and footer lines around the strip.
const chromeHeight = 3

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}

	stripHeight := max(m.height-chromeHeight, 1)
	strip := renderStrip(stripView{
		layout: m.layout,
		offset: m.state.Offset(),
		width:  m.width,
		height: stripHeight,
		frame:  m.marquee.Frame(),
	})
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		strip,
		renderScrollbar(m.state.Offset(), m.layout.MaxScroll, m.width),
		m.footerView(),
	)

	if m.showHelp {
		body = m.dialog.Overlay(body, m.width, m.height)
	}
	return m.notices.overlay(body, m.width, m.height-1)
}

func (m Model) headerView() string {
	from, to := m.state.VisibleYears(m.width)

	left := styles.HeaderStyle.Render(m.opts.Title)
	parts := []string{
		fmt.Sprintf("%g px/yr", m.state.Scale()),
		yearSpan(from, to),
	}
	if hidden := m.hiddenLanes(); hidden > 0 {
		parts = append(parts, fmt.Sprintf("+%d lanes hidden", hidden))
	}
	if !m.loaded {
		parts = append(parts, "loading events…")
	}
	mid := styles.HeaderValueStyle.Render(strings.Join(parts, "  ·  "))
	right := styles.TextMutedStyle.Render(string(m.layout.Variant) + " ")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(mid)-lipgloss.Width(right), 1)
	return left + mid + strings.Repeat(" ", gap) + right
}

func (m Model) hiddenLanes() int {
	shown := max(m.height-chromeHeight-2, 0)
	return max(m.layout.Lanes-shown, 0)
}

func (m Model) footerView() string {
	switch m.inputMode {
	case inputJump:
		return styles.InputPromptStyle.Render("go to year: ") + m.input.View()
	case inputScale:
		return styles.InputPromptStyle.Render("px per year: ") + m.input.View()
	}
	return m.help.View(m.keys)
}
