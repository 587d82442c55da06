package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/data/source"
	"github.com/hay-kot/histline/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput  bool
	invalidOnly bool
	input       iojson.FileReader[[]timeline.Event]
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{
		flags: flags,
		input: iojson.FileReader[[]timeline.Event]{
			Usage: `read events from a JSON file instead of data.source ("-" reads stdin)`,
		},
	}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List events with their parsed years",
		UsageText: "histline ls [--json] [--invalid] [-f file|-]",
		Description: `Displays every event with the start year and span the timeline derives from
its years text. Events whose years cannot be parsed are flagged; they are
skipped by every view.

Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "invalid",
				Usage:       "only list events with unreadable years",
				Destination: &cmd.invalidOnly,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

// eventInfo is the JSON output format for histline ls --json.
type eventInfo struct {
	Index       int    `json:"index"`
	Years       string `json:"years"`
	Description string `json:"description"`
	Valid       bool   `json:"valid"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Duration    int    `json:"duration"`
	Label       string `json:"label,omitempty"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	loader, err := cmd.loader()
	if err != nil {
		return err
	}

	events, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	parse := cmd.flags.Config.ParseOptions()
	infos := make([]eventInfo, 0, len(events))
	invalid := 0
	for i, ev := range events {
		info := describeEvent(i, ev, parse)
		if !info.Valid {
			invalid++
		} else if cmd.invalidOnly {
			continue
		}
		infos = append(infos, info)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, info := range infos {
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode event: %w", err)
			}
		}
		return nil
	}

	if len(infos) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No events found")
		return nil
	}

	_, _ = fmt.Fprintln(out, renderEventTable(infos))
	if invalid > 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter,
			styles.WarningStyle.Render(fmt.Sprintf("%d event(s) with unreadable years are not shown on the timeline", invalid)))
	}
	return nil
}

func (cmd *LsCmd) loader() (source.Loader, error) {
	if !cmd.input.Provided() {
		return cmd.flags.Loader()
	}
	events, err := cmd.input.Read()
	if err != nil {
		return nil, err
	}
	return source.NewStaticLoader(events), nil
}

func describeEvent(i int, ev timeline.Event, parse timeline.ParseOptions) eventInfo {
	span := timeline.ParseYearsWith(ev.Years, parse)
	info := eventInfo{
		Index:       i,
		Years:       ev.Years,
		Description: ev.Description,
		Valid:       span.Valid,
	}
	if span.Valid {
		info.Start = span.Start
		info.End = span.End
		info.Duration = span.Duration
		info.Label = timeline.EraLabel(span.Start)
	}
	return info
}

func renderEventTable(infos []eventInfo) string {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		start, span := "?", "?"
		if info.Valid {
			start = info.Label
			span = strconv.Itoa(info.Duration) + "y"
		}
		rows = append(rows, []string{strconv.Itoa(info.Index), info.Years, start, span, info.Description})
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("#", "YEARS", "START", "SPAN", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingRight(1)
			switch {
			case row == table.HeaderRow:
				return style.Inherit(styles.TextPrimaryBoldStyle)
			case !infos[row].Valid:
				return style.Inherit(styles.WarningStyle)
			}
			return style
		}).
		String()
}
