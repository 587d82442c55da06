package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/histline/internal/core/config"
	"github.com/hay-kot/histline/internal/core/logging"
	"github.com/hay-kot/histline/internal/data/source"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	// DataSource overrides data.source from the config file.
	DataSource string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// Loader returns a loader for the configured event source that fetches the
// list at most once.
func (f *Flags) Loader() (source.Loader, error) {
	l, err := source.New(f.Config.Data.Source)
	if err != nil {
		return nil, fmt.Errorf("event source: %w", err)
	}
	return source.NewOnce(l, logging.Component("source")), nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "histline", "config.yaml")
}

// DefaultLogFile returns a suggested log file path using the system's state
// directory. It is shown in help text; logging to a file is opt-in.
// On macOS: ~/Library/Logs/histline/histline.log
// On Linux: $XDG_STATE_HOME/histline/histline.log
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "histline", "histline.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "histline", "histline.log")
	}

	return filepath.Join(home, ".local", "state", "histline", "histline.log")
}
