package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/trackerview/internal/config"
	"github.com/hupe1980/trackerview/internal/logging"
	"github.com/hupe1980/trackerview/internal/session"
	"github.com/hupe1980/trackerview/internal/tracker"
)

// sessionOptions builds session options from the display settings of the
// active config file.
func sessionOptions(ctx context.Context) (session.Options, error) {
	cfg := config.FromContext(ctx)

	display, err := config.LoadDisplayConfig(cfg.ConfigFile)
	if err != nil {
		return session.Options{}, usageError(err)
	}

	opts := session.Options{
		Palette: display.Palette,
		Colors:  display.Colors,
		Logger:  logging.FromContext(ctx),
	}

	opts.Levels = statusLevels(display.Statuses)

	return opts, nil
}

// statusLevels converts configured statuses to tracker levels. A status
// without a color keeps its default color, if it has one.
func statusLevels(statuses []config.StatusColor) []tracker.StatusLevel {
	if len(statuses) == 0 {
		return nil
	}

	defaults := make(map[string]string)
	for _, l := range tracker.DefaultStatusLevels() {
		defaults[l.Name] = l.Color
	}

	levels := make([]tracker.StatusLevel, len(statuses))

	for i, s := range statuses {
		color := s.Color
		if color == "" {
			color = defaults[s.Name]
		}

		levels[i] = tracker.StatusLevel{Name: s.Name, Color: color}
	}

	return levels
}

// openSession loads the dataset at path, restores the state file named by
// ff and applies its filter actions.
func openSession(ctx context.Context, path string, ff *filterFlags) (*session.Session, error) {
	logger := logging.FromContext(ctx)

	actions, err := ff.actions()
	if err != nil {
		return nil, usageError(err)
	}

	opts, err := sessionOptions(ctx)
	if err != nil {
		return nil, err
	}

	s, err := session.Open(ctx, path, opts)
	if err != nil {
		return nil, &ExitError{Code: 1, Err: fmt.Errorf("loading dataset: %w", err)}
	}

	if ff.state != "" {
		sf, err := session.LoadStateFile(ff.state)
		if err != nil {
			return nil, &ExitError{Code: 1, Err: err}
		}

		if err := s.ApplyState(sf); err != nil {
			return nil, &ExitError{Code: 1, Err: fmt.Errorf("applying %s: %w", ff.state, err)}
		}

		logger.Debug("state restored", slog.String("path", ff.state))
	}

	if err := s.Apply(actions...); err != nil {
		return nil, usageError(err)
	}

	return s, nil
}
