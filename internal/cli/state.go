package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/trackerview/internal/logging"
	"github.com/hupe1980/trackerview/internal/session"
)

func newStateCommand() *cobra.Command {
	ff := &filterFlags{}

	var out string

	cmd := &cobra.Command{
		Use:   "state <data.csv>",
		Short: "Emit the state file for the given filter actions",
		Long: `State applies the filter actions given as flags and prints the
resulting selection as a compact state file. Fully selected filters are
omitted. Pass the file back with --state to restore the selection.

Example:
  trackerview state data.csv --click status=Pilot -o pilots.yaml
  trackerview view data.csv --state pilots.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, args[0], ff)
			if err != nil {
				return err
			}
			defer s.Close()

			sf := session.EncodeState(s.Filters)

			if out == "" {
				if err := session.WriteState(cmd.OutOrStdout(), sf); err != nil {
					return &ExitError{Code: 1, Err: err}
				}

				return nil
			}

			if err := session.SaveStateFile(out, sf); err != nil {
				return &ExitError{Code: 1, Err: fmt.Errorf("saving state: %w", err)}
			}

			logging.FromContext(ctx).Info("state saved",
				slog.String("path", out),
				slog.Int("filters", len(sf.Filters)),
			)

			return nil
		},
	}

	registerFilterFlags(cmd, ff)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the state file to this path")

	return cmd
}
