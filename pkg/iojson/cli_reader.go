package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrTerminalInput is returned when "-" is given but stdin is a terminal.
var ErrTerminalInput = errors.New("no input provided (stdin is a terminal); pipe JSON input or pass a file")

// FileReader decodes a T from the file named by its --file flag. The value
// "-" reads stdin.
type FileReader[T any] struct {
	Usage string

	path  string
	stdin io.Reader
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	usage := fr.Usage
	if usage == "" {
		usage = `path to JSON file ("-" reads stdin)`
	}
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       usage,
		Destination: &fr.path,
	}
}

// Provided reports whether the flag was set.
func (fr *FileReader[T]) Provided() bool {
	return fr.path != ""
}

// Name returns a display name for the input.
func (fr *FileReader[T]) Name() string {
	if fr.path == "-" {
		return "stdin"
	}
	return fr.path
}

func (fr *FileReader[T]) Read() (T, error) {
	var input T

	var reader io.Reader
	switch {
	case fr.path == "-" && fr.stdin != nil:
		reader = fr.stdin
	case fr.path == "-":
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, ErrTerminalInput
		}
		reader = os.Stdin
	default:
		f, err := os.Open(fr.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON from %s: %w", fr.Name(), err)
	}

	return input, nil
}
