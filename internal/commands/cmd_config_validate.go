package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/histline/internal/core/config"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "histline config validate [options]",
				Description: "Validates the configuration file, checking year bounds, scale limits, the theme, the event source and the listen address.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// ValidationError is one failed field check.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []ValidationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	result := validate(cmd.flags.Config, cmd.flags.ConfigPath)

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		outputText(c.Root().Writer, cmd.flags.ConfigPath, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func validate(cfg *config.Config, configPath string) validationResult {
	result := validationResult{Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(configPath)
	if err == nil {
		result.Valid = true
		return result
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
		}
	} else {
		result.Errors = append(result.Errors, ValidationError{Field: "config", Message: err.Error()})
	}
	return result
}

func outputText(w io.Writer, configPath string, result validationResult) {
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("config")+" "+styles.TextMutedStyle.Render(configPath))

	for _, warn := range result.Warnings {
		_, _ = fmt.Fprintln(w, styles.WarningStyle.Render("! "+warn.Category+": "+warn.Message))
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
		}
	}

	for _, e := range result.Errors {
		_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render("✗ "+e.Field+": "+e.Message))
	}

	_, _ = fmt.Fprintln(w)
	if result.Valid {
		_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render("✓ Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
