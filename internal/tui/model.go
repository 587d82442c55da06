// Package tui implements the Bubble Tea timeline view for histline.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/logging"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/core/viewport"
	"github.com/hay-kot/histline/internal/data/source"
	"github.com/hay-kot/histline/internal/tui/components"
)

const (
	// startJumpDelay lets the first frame render before the opening scroll.
	startJumpDelay = 100 * time.Millisecond
	frameInterval  = 16 * time.Millisecond
)

// inputMode selects what the footer text input edits.
type inputMode int

const (
	inputNone inputMode = iota
	inputJump
	inputScale
)

type (
	eventsLoadedMsg struct {
		events []timeline.Event
		err    error
	}
	startJumpMsg struct{}
	frameMsg     time.Time
)

// Opts configures the view.
type Opts struct {
	Title         string
	Bounds        timeline.Bounds
	ScaleMode     viewport.ScaleMode
	Scale         float64
	StartYear     int
	CurrentYear   int
	Variant       layout.Variant
	DenseMaxScale float64
	Parse         timeline.ParseOptions
	// ScrollStep is the number of cells an arrow key moves.
	ScrollStep   int
	ScrollFrames int
	// Diagnostics shows a notice for a failed load or unreadable events.
	// Off, both are only logged.
	Diagnostics bool
	// Context bounds the event load; quitting the program cancels it.
	// Nil means context.Background.
	Context context.Context
}

// Model is the root Bubble Tea model.
type Model struct {
	loader source.Loader
	opts   Opts
	log    zerolog.Logger

	state  *viewport.State
	events []timeline.Event
	loaded bool
	layout layout.Layout

	width  int
	height int

	keys      keyMap
	help      help.Model
	input     textinput.Model
	inputMode inputMode
	showHelp  bool
	dialog    *components.HelpDialog

	notices *noticeStack
	marquee *Marquee
	ticking bool
}

// New creates the model. loader is called once from Init.
func New(loader source.Loader, opts Opts) Model {
	if opts.Title == "" {
		opts.Title = "histline"
	}
	if opts.ScrollStep < 1 {
		opts.ScrollStep = 1
	}

	state := viewport.New(opts.Bounds, opts.ScaleMode, opts.Scale)
	state.SetScrollFrames(opts.ScrollFrames)

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 16
	input.PromptStyle = styles.InputPromptStyle
	input.TextStyle = styles.TextForegroundStyle

	keys := defaultKeyMap()

	m := Model{
		loader:  loader,
		opts:    opts,
		log:     logging.Component("tui"),
		state:   state,
		events:  []timeline.Event{},
		keys:    keys,
		help:    help.New(),
		input:   input,
		dialog:  components.NewHelpDialog("Keys", keys.helpSections()),
		notices: &noticeStack{},
		marquee: &Marquee{},
	}
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		tea.Tick(startJumpDelay, func(time.Time) tea.Msg { return startJumpMsg{} }),
	)
}

func (m Model) loadCmd() tea.Cmd {
	loader := m.loader
	ctx := m.opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		events, err := loader.Load(ctx)
		return eventsLoadedMsg{events: events, err: err}
	}
}

func scheduleFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// rebuild recomputes the layout for the current scale.
func (m *Model) rebuild() {
	m.layout = layout.Build(m.events, layout.Options{
		Bounds:        m.opts.Bounds,
		Variant:       m.opts.Variant,
		Scale:         m.state.Scale(),
		CurrentYear:   m.opts.CurrentYear,
		MinBandWidth:  cellMinBandWidth,
		CharWidth:     cellCharWidth,
		DenseMaxScale: m.opts.DenseMaxScale,
		Parse:         m.opts.Parse,
	})
}

func (m *Model) hasMarquee() bool {
	for _, b := range m.layout.Events {
		if b.Valid && b.Marquee {
			return true
		}
	}
	return false
}

// startFrames begins the frame loop if a smooth scroll is pending.
func (m *Model) startFrames() tea.Cmd {
	if !m.state.Animating() || m.ticking {
		return nil
	}
	m.ticking = true
	return scheduleFrame()
}

func (m *Model) startMarquee() tea.Cmd {
	if m.marquee.Ticking() || !m.hasMarquee() {
		return nil
	}
	m.marquee.SetTicking(true)
	return scheduleMarqueeTick()
}

func (m *Model) pushNotice(level noticeLevel, msg string) tea.Cmd {
	m.notices.push(level, msg)
	if m.notices.ticking {
		return nil
	}
	m.notices.ticking = true
	return scheduleNoticeTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-20, 8)
		return m, nil

	case eventsLoadedMsg:
		return m.handleLoaded(msg)

	case startJumpMsg:
		m.state.ScrollTo(m.opts.StartYear)
		return m, m.startFrames()

	case frameMsg:
		if m.state.Step() {
			return m, scheduleFrame()
		}
		m.ticking = false
		return m, nil

	case marqueeTickMsg:
		if !m.hasMarquee() {
			m.marquee.SetTicking(false)
			return m, nil
		}
		m.marquee.Advance()
		return m, scheduleMarqueeTick()

	case noticeTickMsg:
		m.notices.tick(noticeTickInterval)
		if m.notices.empty() {
			m.notices.ticking = false
			return m, nil
		}
		return m, scheduleNoticeTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleLoaded(msg eventsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loaded = true
	m.events = msg.events
	if m.events == nil {
		m.events = []timeline.Event{}
	}
	m.rebuild()

	var cmds []tea.Cmd
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("load events")
		if m.opts.Diagnostics {
			cmds = append(cmds, m.pushNotice(levelError, "Could not load events: "+msg.err.Error()))
		}
	}
	if n := len(m.layout.Invalid()); n > 0 {
		m.log.Warn().Int("count", n).Msg("events with unreadable years")
		if m.opts.Diagnostics {
			cmds = append(cmds, m.pushNotice(levelWarning, fmt.Sprintf("%d event(s) with unreadable years not shown", n)))
		}
	}
	cmds = append(cmds, m.startMarquee())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	step := float64(m.opts.ScrollStep)
	page := float64(max(m.width-pageOverlap(m.width), 1))

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case msg.String() == "esc":
		m.notices.clear()
	case key.Matches(msg, m.keys.ZoomIn):
		m.state.ZoomIn()
		m.rebuild()
		return m, m.startMarquee()
	case key.Matches(msg, m.keys.ZoomOut):
		m.state.ZoomOut()
		m.rebuild()
		return m, m.startMarquee()
	case key.Matches(msg, m.keys.Left):
		m.state.ScrollBy(-step)
	case key.Matches(msg, m.keys.Right):
		m.state.ScrollBy(step)
	case key.Matches(msg, m.keys.PageLeft):
		m.state.ScrollBy(-page)
	case key.Matches(msg, m.keys.PageRight):
		m.state.ScrollBy(page)
	case key.Matches(msg, m.keys.Start):
		m.state.ScrollTo(m.opts.Bounds.MinYear)
		return m, m.startFrames()
	case key.Matches(msg, m.keys.End):
		m.state.ScrollTo(m.opts.Bounds.MaxYear)
		return m, m.startFrames()
	case key.Matches(msg, m.keys.Today):
		m.state.ScrollTo(m.opts.CurrentYear)
		return m, m.startFrames()
	case key.Matches(msg, m.keys.Jump):
		return m, m.openInput(inputJump, "year")
	case key.Matches(msg, m.keys.Scale):
		return m, m.openInput(inputScale, "px/year")
	}
	return m, nil
}

// pageOverlap keeps a little of the previous page in view.
func pageOverlap(width int) int {
	return width / 10
}

func (m *Model) openInput(mode inputMode, placeholder string) tea.Cmd {
	m.inputMode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		value := m.input.Value()
		mode := m.inputMode
		m.closeInput()
		return m.applyInput(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
}

// applyInput commits typed text. Invalid text is ignored without feedback.
func (m Model) applyInput(mode inputMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case inputJump:
		if !m.state.SetTargetText(value) {
			m.log.Debug().Str("input", value).Msg("ignored jump target")
			return m, nil
		}
		m.state.Jump()
		return m, m.startFrames()
	case inputScale:
		if !m.state.SetScaleText(value) {
			m.log.Debug().Str("input", value).Msg("ignored scale")
			return m, nil
		}
		m.rebuild()
		return m, m.startMarquee()
	}
	return m, nil
}

// State exposes the view state for tests and callers embedding the model.
func (m Model) State() viewport.ViewState {
	return m.state.Snapshot()
}
