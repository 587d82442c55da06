package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/histline/internal/core/config"
	"github.com/hay-kot/histline/internal/core/styles"
)

type InitCmd struct {
	flags *Flags
	force bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Write a default configuration file",
		UsageText: "histline init [--force]",
		Description: `Writes the default configuration to the --config path
(~/.config/histline/config.yaml unless overridden).

An existing file is left alone unless --force is given, in which case it is
first copied to config.yaml.bak.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(_ context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath
	out := c.Root().Writer

	if _, err := os.Stat(path); err == nil {
		if !cmd.force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		backup, err := config.Backup(path)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, styles.TextMutedStyle.Render("backed up existing config to "+backup))
	}

	cfg := config.DefaultConfig()
	if err := config.Save(path, &cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, styles.SuccessStyle.Render("✓ wrote "+path))
	return nil
}
