package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/tui"
	"github.com/hay-kot/histline/pkg/utils"
)

type TuiCmd struct {
	flags *Flags

	// flags
	year  string
	scale string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "year",
			Usage:       "year to scroll to on start (overrides timeline.start_year)",
			Local:       true,
			Destination: &cmd.year,
		},
		&cli.StringFlag{
			Name:        "scale",
			Usage:       "initial pixels per year (overrides timeline.scale)",
			Local:       true,
			Destination: &cmd.scale,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	opts := tui.Opts{
		Bounds:        cfg.Bounds(),
		ScaleMode:     cfg.Timeline.ScaleMode,
		Scale:         cfg.Timeline.Scale,
		StartYear:     cfg.StartYear(),
		CurrentYear:   timeline.CurrentYear(nil),
		Variant:       cfg.Timeline.Variant,
		DenseMaxScale: cfg.Timeline.DenseMaxScale,
		Parse:         cfg.ParseOptions(),
		ScrollStep:    cfg.TUI.ScrollStep,
		ScrollFrames:  cfg.TUI.ScrollFrames,
		Diagnostics:   cfg.Timeline.Diagnostics,
		Context:       ctx,
	}
	if err := applyViewOverrides(&opts.StartYear, &opts.Scale, cmd.year, cmd.scale); err != nil {
		return err
	}

	// The view owns the terminal; hold console logs until it exits.
	if cmd.flags.LogFile == "" {
		deferred := &utils.DeferredWriter{}
		prev := log.Logger
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: deferred, TimeFormat: time.Kitchen})
		defer func() {
			log.Logger = prev
			_ = deferred.Flush(os.Stderr)
		}()
	}

	loader, err := cmd.flags.Loader()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(loader, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
