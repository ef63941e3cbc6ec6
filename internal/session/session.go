// Package session owns the state of one tracker browsing session: the raw
// rows, the nine filters, the color scales and the derived view. A Session
// replaces module-level singletons; callers pass it to whatever renders the
// view.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/trackerview/internal/filter"
	"github.com/hupe1980/trackerview/internal/logging"
	"github.com/hupe1980/trackerview/internal/scale"
	"github.com/hupe1980/trackerview/internal/tracker"
	"github.com/hupe1980/trackerview/internal/view"
)

// ErrAlreadyLoaded is returned when Load is called twice on a session.
var ErrAlreadyLoaded = errors.New("session data already loaded")

// Options configures a Session.
type Options struct {
	// Levels is the status vocabulary. tracker.DefaultStatusLevels() is used
	// when empty.
	Levels []tracker.StatusLevel
	// Palette is the ordinal palette of the category scales.
	Palette []string
	// Colors holds explicit colors per scale key and value.
	Colors map[string]map[string]string
	// Logger receives session diagnostics. slog.Default() when nil.
	Logger *slog.Logger
}

// Session is the application context of one browsing session.
type Session struct {
	Filters *filter.Set
	Scales  *scale.Set
	View    *view.Store

	opts   Options
	logger *slog.Logger
	loaded bool
}

// New creates a session without data. Until Load is called the view is
// empty.
func New(opts Options) *Session {
	if len(opts.Levels) == 0 {
		opts.Levels = tracker.DefaultStatusLevels()
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	filters := filter.NewSet()
	scales := scale.NewSet()

	return &Session{
		Filters: filters,
		Scales:  scales,
		View:    view.NewStore(filters, scales),
		opts:    opts,
		logger:  logging.Component(opts.Logger, "session"),
	}
}

// Open loads the dataset at path into a new session.
func Open(ctx context.Context, path string, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}

	rows, err := tracker.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	s := New(opts)
	if err := s.Load(rows); err != nil {
		return nil, err
	}

	return s, nil
}

// Load hands the raw rows to the session, builds the color scales and
// initializes every filter. It may be called once; the view is recomputed
// a single time.
func (s *Session) Load(rows []tracker.Row) error {
	if s.loaded {
		return ErrAlreadyLoaded
	}

	s.loaded = true

	built := scale.Build(rows, scale.Options{
		Levels:    s.opts.Levels,
		Palette:   s.opts.Palette,
		Overrides: s.opts.Colors,
	})

	var err error

	s.View.Batch(func() {
		s.View.SetRows(rows)

		for _, name := range scale.Names() {
			if uerr := s.Scales.Update(name, built.Get(name)); uerr != nil {
				err = uerr
				return
			}
		}

		s.Filters.Init(rows, tracker.StatusNames(s.opts.Levels))
	})

	if err != nil {
		return fmt.Errorf("building color scales: %w", err)
	}

	s.logger.Debug("session loaded",
		slog.Int("rows", len(rows)),
		slog.Int("statuses", len(s.opts.Levels)),
	)

	return nil
}

// Loaded reports whether Load has been called.
func (s *Session) Loaded() bool {
	return s.loaded
}

// Filter returns the filter with the given key.
func (s *Session) Filter(name string) (*filter.Multi, error) {
	return s.Filters.ByName(name)
}

// Reset selects every option of every filter.
func (s *Session) Reset() {
	s.View.Batch(func() {
		for _, m := range s.Filters.All() {
			m.SelectAll()
		}
	})
}

// Close detaches the view from its inputs.
func (s *Session) Close() {
	s.View.Close()
}
