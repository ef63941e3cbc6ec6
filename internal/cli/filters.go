package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/trackerview/internal/config"
	"github.com/hupe1980/trackerview/internal/output"
)

func newFiltersCommand() *cobra.Command {
	ff := &filterFlags{}
	rf := &renderFlags{}

	var names []string

	cmd := &cobra.Command{
		Use:   "filters <data.csv>",
		Short: "List filter options and their selection",
		Long: `Filters prints every option of every filter together with its
selection after the state file and filter actions have been applied.
Use --name to restrict the listing to some filters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, args[0], ff)
			if err != nil {
				return err
			}
			defer s.Close()

			listings := output.ListFilters(s.Filters)

			if len(names) > 0 {
				listings = listings[:0:0]

				for _, name := range names {
					m, err := s.Filter(name)
					if err != nil {
						return usageError(err)
					}

					listings = append(listings, output.FilterListing{Name: m.Name(), Options: m.State()})
				}
			}

			data, err := output.FormatFilters(config.FromContext(ctx).Format, listings)
			if err != nil {
				return usageError(err)
			}

			return writeOutput(ctx, cmd, rf.output, data)
		},
	}

	registerFilterFlags(cmd, ff)
	registerRenderFlags(cmd, rf)
	cmd.Flags().StringSliceVar(&names, "name", nil, "only list these filters")

	return cmd
}
