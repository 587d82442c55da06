// Package source loads the static event list the timeline is drawn from.
//
// A list is loaded once per session. There is no retry and no streaming: a
// failed load leaves the caller with an empty list.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hay-kot/histline/internal/core/timeline"
)

// ErrNoLocation is returned by New for an empty location.
var ErrNoLocation = errors.New("event source location is empty")

// Loader produces the event list.
type Loader interface {
	Load(ctx context.Context) ([]timeline.Event, error)
}

// New returns an HTTPLoader for http(s) URLs and a FileLoader otherwise.
func New(location string) (Loader, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrNoLocation
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPLoader(location, nil), nil
	}
	return NewFileLoader(location), nil
}

// Decode reads a JSON array of events from r.
func Decode(r io.Reader) ([]timeline.Event, error) {
	var events []timeline.Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	if events == nil {
		events = []timeline.Event{}
	}
	return events, nil
}

// HTTPLoader fetches the list with a single unauthenticated GET.
type HTTPLoader struct {
	url    string
	client *http.Client
}

// NewHTTPLoader creates a loader for url. A nil client uses a client
// without a timeout; the request is bounded only by the context.
func NewHTTPLoader(url string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPLoader{url: url, client: client}
}

func (l *HTTPLoader) Load(ctx context.Context) ([]timeline.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request events: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("source: close events response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request events: status %d", resp.StatusCode)
	}

	return Decode(resp.Body)
}

// FileLoader reads the list from a local path. The path may be a
// doublestar glob ("data/**/*.json"); the lists of all matches are
// concatenated in lexical path order.
const maxParallelReads = 8

type FileLoader struct {
	pattern string
}

func NewFileLoader(pattern string) *FileLoader {
	return &FileLoader{pattern: pattern}
}

func (l *FileLoader) Load(ctx context.Context) ([]timeline.Event, error) {
	paths, err := l.Paths()
	if err != nil {
		return nil, err
	}

	// Files are read concurrently; chunks[i] keeps path order.
	chunks := make([][]timeline.Event, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunk, err := readFile(path)
			if err != nil {
				return err
			}
			chunks[i] = chunk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	events := []timeline.Event{}
	for _, chunk := range chunks {
		events = append(events, chunk...)
	}
	return events, nil
}

// Paths resolves the pattern to the files Load would read.
func (l *FileLoader) Paths() ([]string, error) {
	if !hasMeta(l.pattern) {
		return []string{l.pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(l.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", l.pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %q: no files match", l.pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

func readFile(path string) ([]timeline.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer func() { _ = f.Close() }()

	events, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// StaticLoader returns a fixed list. It backs lists read up front, such
// as events piped on stdin.
type StaticLoader struct {
	events []timeline.Event
}

func NewStaticLoader(events []timeline.Event) *StaticLoader {
	return &StaticLoader{events: events}
}

func (l *StaticLoader) Load(context.Context) ([]timeline.Event, error) {
	return l.events, nil
}
