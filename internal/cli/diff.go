package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/trackerview/internal/config"
	"github.com/hupe1980/trackerview/internal/diff"
	"github.com/hupe1980/trackerview/internal/output"
	"github.com/hupe1980/trackerview/internal/view"
)

type diffOptions struct {
	fromState string
	to        filterFlags
	summary   string
	exitCode  bool
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <data.csv>",
		Short: "Compare the rows shown under two filter selections",
		Long: `Diff renders the shown rows under two selections and prints a
unified diff between them. The "from" side is --from-state, or everything
selected. The "to" side is --to-state followed by the filter actions given
as flags, so a single click can be previewed with:

  trackerview diff data.csv --click status=Pilot

Use --summary to list only the rows that were revealed or hidden.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], opts)
		},
	}

	registerActionFlags(cmd, &opts.to)

	f := cmd.Flags()
	f.StringVar(&opts.fromState, "from-state", "", "state file of the from side (default: all selected)")
	f.StringVar(&opts.to.state, "to-state", "", "state file of the to side (default: all selected)")
	f.StringVar(&opts.summary, "summary", "", "print only the visibility summary: text or json")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with status 1 when the views differ")

	return cmd
}

func runDiff(cmd *cobra.Command, path string, opts *diffOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	switch opts.summary {
	case "", "text", "json":
	default:
		return usageError(fmt.Errorf("invalid --summary %q: must be text or json", opts.summary))
	}

	fromRows, err := viewRows(ctx, path, &filterFlags{state: opts.fromState})
	if err != nil {
		return err
	}

	toRows, err := viewRows(ctx, path, &opts.to)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	vis := diff.CompareVisibility(fromRows, toRows)
	changed := !vis.Empty()

	switch opts.summary {
	case "":
		oldText, err := output.FormatCSV(fromRows, output.Options{})
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}

		newText, err := output.FormatCSV(toRows, output.Options{})
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}

		dopts := diff.DefaultOptions()
		dopts.OldLabel = label(opts.fromState, "all selected")
		dopts.NewLabel = label(opts.to.state, "all selected")

		res, err := diff.Compute(string(oldText), string(newText), dopts)
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}

		diff.Write(w, res, !cfg.NoColor)

		changed = res.Changed
	case "text":
		diff.WriteVisibility(w, vis)
	case "json":
		data, err := json.MarshalIndent(vis, "", "  ")
		if err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("formatting JSON: %w", err)}
		}

		_, _ = fmt.Fprintln(w, string(data))
	}

	if opts.exitCode && changed {
		return &ExitError{Code: 1}
	}

	return nil
}

func viewRows(ctx context.Context, path string, ff *filterFlags) ([]view.Row, error) {
	s, err := openSession(ctx, path, ff)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return s.View.Rows(), nil
}

func label(path, fallback string) string {
	if path == "" {
		return fallback
	}

	return path
}
