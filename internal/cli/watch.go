package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/trackerview/internal/config"
	"github.com/hupe1980/trackerview/internal/diff"
	"github.com/hupe1980/trackerview/internal/logging"
	"github.com/hupe1980/trackerview/internal/view"
	"github.com/hupe1980/trackerview/internal/watch"
)

func newWatchCommand() *cobra.Command {
	ff := &filterFlags{}
	rf := &renderFlags{}

	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <data.csv>",
		Short: "Re-render the view whenever the dataset changes",
		Long: `Watch renders the view like the view command, then re-renders it
each time the dataset, the config file or the state file changes on disk.
The state file and filter actions are reapplied after every reload.

Each run reports the row counts and how many rows were revealed or hidden
compared with the previous run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], ff, rf, debounce)
		},
	}

	registerFilterFlags(cmd, ff)
	registerRenderFlags(cmd, rf)
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "quiet period before re-rendering")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, ff *filterFlags, rf *renderFlags, debounce time.Duration) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	files := []string{path}

	if cfg.ConfigFile != "" {
		files = append(files, cfg.ConfigFile)
	}

	if ff.state != "" {
		files = append(files, ff.state)
	}

	// Runs never overlap, so previous needs no lock.
	var previous []view.Row

	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		s, err := openSession(fnCtx, path, ff)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		rows := s.View.Rows()

		data, err := renderRows(fnCtx, rows, rf)
		if err != nil {
			return nil, err
		}

		if err := writeOutput(fnCtx, cmd, rf.output, data); err != nil {
			return nil, err
		}

		result := &watch.RunResult{Stats: view.Summarize(rows)}
		if previous != nil {
			result.Visibility = diff.CompareVisibility(previous, rows)
		}

		previous = rows

		return result, nil
	}

	opts := watch.DefaultOptions()
	opts.Files = files
	opts.Debounce = debounce
	opts.Logger = logging.Component(logging.FromContext(ctx), "watch")
	opts.Out = cmd.ErrOrStderr()

	if err := watch.Run(ctx, opts, runFn); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	return nil
}
