package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/web"
)

// shutdownGrace bounds how long in-flight requests may run after a signal.
const shutdownGrace = 5 * time.Second

type ServeCmd struct {
	flags *Flags

	// flags
	listen  string
	profile bool
	title   string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the timeline page over HTTP",
		UsageText: "histline serve [--listen addr] [--pprof]",
		Description: `Serves the browser timeline at /, the event list at /data.json, computed
layouts at /api/layout?scale=N and an SVG export at /timeline.svg.

The page accepts ?scale= and ?year= to set the zoom and the year it scrolls to.
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "listen",
				Aliases:     []string{"l"},
				Usage:       "address to listen on (overrides serve.listen)",
				Destination: &cmd.listen,
			},
			&cli.BoolFlag{
				Name:        "pprof",
				Usage:       "expose net/http/pprof under /debug/pprof/",
				Destination: &cmd.profile,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "page title",
				Value:       "histline",
				Destination: &cmd.title,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	addr := cfg.Serve.Listen
	if cmd.listen != "" {
		addr = cmd.listen
	}

	loader, err := cmd.flags.Loader()
	if err != nil {
		return err
	}

	server := web.New(loader, web.Opts{
		Title:         cmd.title,
		Addr:          addr,
		Bounds:        cfg.Bounds(),
		ScaleMode:     cfg.Timeline.ScaleMode,
		Scale:         cfg.Timeline.Scale,
		StartYear:     cfg.StartYear(),
		CurrentYear:   timeline.CurrentYear(nil),
		Variant:       cfg.Timeline.Variant,
		DenseMaxScale: cfg.Timeline.DenseMaxScale,
		Parse:         cfg.ParseOptions(),
		Palette:       styles.CurrentPalette,
		ScrollFrames:  cfg.TUI.ScrollFrames,
		Diagnostics:   cfg.Timeline.Diagnostics,
		Profile:       cmd.profile,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, shutdownGrace)
}
