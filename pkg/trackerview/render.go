// Package trackerview provides a public Go API for filtering and rendering
// a tracker dataset.
//
// Basic usage:
//
//	result, err := trackerview.Render(ctx, "data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Output))
//
// With options:
//
//	result, err := trackerview.Render(ctx, "data.csv",
//	    trackerview.WithClick("status", "Pilot"),
//	    trackerview.WithFormat("json"),
//	)
package trackerview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/trackerview/internal/logging"
	"github.com/hupe1980/trackerview/internal/output"
	"github.com/hupe1980/trackerview/internal/session"
	"github.com/hupe1980/trackerview/internal/tracker"
	"github.com/hupe1980/trackerview/internal/view"
)

// Row is one row of the rendered view.
type Row = view.Row

// Stats counts the rows of a view.
type Stats = view.Stats

// StatusLevel is one entry of the status vocabulary.
type StatusLevel = tracker.StatusLevel

// Option configures Render.
type Option func(*options)

type options struct {
	statePath string
	actions   []session.Action
	levels    []tracker.StatusLevel
	palette   []string
	colors    map[string]map[string]string
	format    string
	all       bool
	color     bool
	logger    *slog.Logger
}

// --- Filter actions ---

// WithClick clicks values of filter like legend entries.
func WithClick(filter string, values ...string) Option {
	return action(session.OpClick, filter, values)
}

// WithSelect selects values of filter.
func WithSelect(filter string, values ...string) Option {
	return action(session.OpSelect, filter, values)
}

// WithUnselect unselects values of filter.
func WithUnselect(filter string, values ...string) Option {
	return action(session.OpUnselect, filter, values)
}

// WithSelectOne selects value and unselects every other option of filter.
func WithSelectOne(filter, value string) Option {
	return action(session.OpSelectOne, filter, []string{value})
}

// WithUnselectAll unselects every option of filter.
func WithUnselectAll(filter string) Option {
	return action(session.OpUnselectAll, filter, nil)
}

// WithSelectAll selects every option of filter.
func WithSelectAll(filter string) Option {
	return action(session.OpSelectAll, filter, nil)
}

func action(op session.Op, filter string, values []string) Option {
	return func(o *options) {
		o.actions = append(o.actions, session.Action{Op: op, Filter: filter, Values: values})
	}
}

// WithState restores the selection of a state file before applying the
// filter actions.
func WithState(path string) Option { return func(o *options) { o.statePath = path } }

// --- Display ---

// WithStatuses overrides the status vocabulary.
func WithStatuses(levels []StatusLevel) Option { return func(o *options) { o.levels = levels } }

// WithPalette overrides the ordinal palette of the category scales.
func WithPalette(colors []string) Option { return func(o *options) { o.palette = colors } }

// WithColors sets explicit colors per filter key and value.
func WithColors(colors map[string]map[string]string) Option {
	return func(o *options) { o.colors = colors }
}

// --- Output ---

// WithFormat sets the output format: table, csv, json, yaml, markdown or
// html (default: table).
func WithFormat(format string) Option { return func(o *options) { o.format = format } }

// WithAll includes hidden rows in the output.
func WithAll() Option { return func(o *options) { o.all = true } }

// WithColor enables ANSI color swatches in table output.
func WithColor() Option { return func(o *options) { o.color = true } }

// WithLogger sets the logger. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// Result holds the output of a successful Render.
type Result struct {
	// Rows is the full view, hidden rows included.
	Rows []Row

	// Stats counts the total, shown and hidden rows.
	Stats Stats

	// Output is the view rendered in the requested format.
	Output []byte

	// State is the YAML state file of the final selection.
	State []byte
}

// Render loads the dataset at path, applies the state file and filter
// actions, and renders the view.
func Render(ctx context.Context, path string, opts ...Option) (*Result, error) {
	if path == "" {
		return nil, errors.New("dataset path must not be empty")
	}

	o := &options{format: "table", logger: logging.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	formatter, err := output.DefaultRegistry().Formatter(o.format)
	if err != nil {
		return nil, err
	}

	s, err := session.Open(ctx, path, session.Options{
		Levels:  o.levels,
		Palette: o.palette,
		Colors:  o.colors,
		Logger:  o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	defer s.Close()

	if o.statePath != "" {
		sf, err := session.LoadStateFile(o.statePath)
		if err != nil {
			return nil, err
		}

		if err := s.ApplyState(sf); err != nil {
			return nil, err
		}
	}

	if err := s.Apply(o.actions...); err != nil {
		return nil, err
	}

	rows := s.View.Rows()

	rendered, err := formatter(rows, output.Options{All: o.all, NoColor: !o.color})
	if err != nil {
		return nil, err
	}

	var state bytes.Buffer
	if err := session.WriteState(&state, session.EncodeState(s.Filters)); err != nil {
		return nil, err
	}

	return &Result{
		Rows:   rows,
		Stats:  s.View.Stats(),
		Output: rendered,
		State:  state.Bytes(),
	}, nil
}
