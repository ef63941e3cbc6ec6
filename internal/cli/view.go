package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/trackerview/internal/config"
	"github.com/hupe1980/trackerview/internal/logging"
	"github.com/hupe1980/trackerview/internal/output"
	"github.com/hupe1980/trackerview/internal/view"
)

func newViewCommand() *cobra.Command {
	ff := &filterFlags{}
	rf := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "view <data.csv>",
		Short: "Render the filtered tracker view",
		Long: `View loads the dataset, applies the state file and filter actions
given as flags, and renders the rows that pass every filter.

Filter keys: status, country, use_case, technology, architecture,
infrastructure, access, corporate_partnership, crossborder_partnerships.

Examples:
  trackerview view data.csv --click status=Pilot
  trackerview view data.csv --select-one country=Canada -f json
  trackerview view data.csv --unselect "use_case=Retail|Wholesale" --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], ff, rf)
		},
	}

	registerFilterFlags(cmd, ff)
	registerRenderFlags(cmd, rf)

	return cmd
}

func runView(cmd *cobra.Command, path string, ff *filterFlags, rf *renderFlags) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, path, ff)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := renderRows(ctx, s.View.Rows(), rf)
	if err != nil {
		return err
	}

	if err := writeOutput(ctx, cmd, rf.output, data); err != nil {
		return err
	}

	reportStats(ctx, cmd, s.View.Stats())

	return nil
}

// renderRows renders rows in the configured format. Color is disabled when
// writing to a file.
func renderRows(ctx context.Context, rows []view.Row, rf *renderFlags) ([]byte, error) {
	cfg := config.FromContext(ctx)
	registry := output.DefaultRegistry()

	formatter, err := registry.Formatter(cfg.Format)
	if err != nil {
		return nil, usageError(err)
	}

	data, err := formatter(rows, output.Options{
		All:     rf.all,
		NoColor: cfg.NoColor || rf.output != "",
	})
	if err != nil {
		return nil, &ExitError{Code: 1, Err: err}
	}

	return data, nil
}

func writeOutput(ctx context.Context, cmd *cobra.Command, path string, data []byte) error {
	w := output.NewWriter(path, cmd.OutOrStdout(), output.WithLogger(logging.FromContext(ctx)))

	if err := w.Write(data); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	return nil
}

// reportStats prints the row counts to stderr unless quiet.
func reportStats(ctx context.Context, cmd *cobra.Command, st view.Stats) {
	if config.FromContext(ctx).Quiet {
		return
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d rows, %d shown, %d hidden\n", st.Total, st.Shown, st.Hidden)
}
