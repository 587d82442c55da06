package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/core/viewport"
	"github.com/hay-kot/histline/internal/render/svg"
)

type RenderCmd struct {
	flags *Flags

	// flags
	output string
	scale  string
	from   string
	to     string
	title  string
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Write the timeline as an SVG document",
		UsageText: "histline render [-o file.svg] [--scale N] [--from YEAR] [--to YEAR]",
		Description: `Renders the gridlines, the today marker and every event band as a standalone
SVG. Use --from and --to to crop the output to a range of years.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       `output file ("-" writes to stdout)`,
				Value:       "-",
				Destination: &cmd.output,
			},
			&cli.StringFlag{
				Name:        "scale",
				Usage:       "pixels per year (defaults to timeline.scale)",
				Destination: &cmd.scale,
			},
			&cli.StringFlag{
				Name:        "from",
				Usage:       "first year to include",
				Destination: &cmd.from,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "last year to include",
				Destination: &cmd.to,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "document title",
				Destination: &cmd.title,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	bounds := cfg.Bounds()

	scale := cfg.Timeline.Scale
	if cmd.scale != "" {
		s, err := parseScaleFlag(cmd.scale)
		if err != nil {
			return err
		}
		scale = s
	}
	scale = viewport.New(bounds, cfg.Timeline.ScaleMode, scale).Scale()

	from, to, err := cmd.window(bounds, scale)
	if err != nil {
		return err
	}

	loader, err := cmd.flags.Loader()
	if err != nil {
		return err
	}
	// A failed load is logged by the loader; the strip renders without events.
	events, _ := loader.Load(ctx)

	l := layout.Build(events, cfg.LayoutOptions(scale, timeline.CurrentYear(nil)))
	if n := len(l.Invalid()); n > 0 {
		log.Warn().Int("count", n).Msg("skipping events with unreadable years")
	}

	var out io.Writer = c.Root().Writer
	if cmd.output != "-" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	err = svg.Render(out, l, svg.Options{
		Palette: styles.CurrentPalette,
		From:    from,
		To:      to,
		Title:   cmd.title,
	})
	if err != nil {
		return fmt.Errorf("render svg: %w", err)
	}

	if cmd.output != "-" {
		log.Info().Str("path", cmd.output).Msg("timeline written")
	}
	return nil
}

// window resolves --from and --to into a pixel range. Both unset means the
// full strip.
func (cmd *RenderCmd) window(bounds timeline.Bounds, scale float64) (float64, float64, error) {
	if cmd.from == "" && cmd.to == "" {
		return 0, 0, nil
	}

	fromYear, toYear := bounds.MinYear, bounds.MaxYear
	var err error
	if cmd.from != "" {
		if fromYear, err = parseYearFlag("from", cmd.from); err != nil {
			return 0, 0, err
		}
	}
	if cmd.to != "" {
		if toYear, err = parseYearFlag("to", cmd.to); err != nil {
			return 0, 0, err
		}
	}
	if toYear < fromYear {
		return 0, 0, fmt.Errorf("--to (%d) is before --from (%d)", toYear, fromYear)
	}

	from, to := bounds.PixelRange(fromYear, toYear, scale)
	return from, to, nil
}
