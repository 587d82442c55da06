package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/tui/components"
)

const (
	noticeTTL          = 5 * time.Second
	maxNotices         = 3
	noticeTickInterval = 100 * time.Millisecond
	noticeWidth        = 44
)

type noticeLevel int

const (
	levelInfo noticeLevel = iota
	levelWarning
	levelError
)

type notice struct {
	level     noticeLevel
	message   string
	remaining time.Duration
}

type noticeTickMsg time.Time

func scheduleNoticeTick() tea.Cmd {
	return tea.Tick(noticeTickInterval, func(t time.Time) tea.Msg {
		return noticeTickMsg(t)
	})
}

// noticeStack holds the transient messages shown in the lower-right
// corner. Oldest first; at most maxNotices are kept.
type noticeStack struct {
	items   []notice
	ticking bool
}

func (s *noticeStack) push(level noticeLevel, message string) {
	s.items = append(s.items, notice{level: level, message: message, remaining: noticeTTL})
	if len(s.items) > maxNotices {
		s.items = s.items[len(s.items)-maxNotices:]
	}
}

// tick ages every notice by d and drops the expired ones.
func (s *noticeStack) tick(d time.Duration) {
	alive := s.items[:0]
	for _, n := range s.items {
		n.remaining -= d
		if n.remaining > 0 {
			alive = append(alive, n)
		}
	}
	s.items = alive
}

func (s *noticeStack) clear() { s.items = s.items[:0] }

func (s *noticeStack) empty() bool { return len(s.items) == 0 }

func (s *noticeStack) view() string {
	if s.empty() {
		return ""
	}
	rendered := make([]string, 0, len(s.items))
	for _, n := range s.items {
		var style lipgloss.Style
		switch n.level {
		case levelError:
			style = styles.ToastErrorStyle
		case levelWarning:
			style = styles.ToastWarningStyle
		default:
			style = styles.ToastInfoStyle
		}
		rendered = append(rendered, style.Width(noticeWidth).Render(n.message))
	}
	return strings.Join(rendered, "\n")
}

// overlay draws the stack over background, anchored bottom right.
func (s *noticeStack) overlay(background string, width, height int) string {
	content := s.view()
	if content == "" {
		return background
	}
	return components.OverlayBottomRight(background, content, width, height)
}
