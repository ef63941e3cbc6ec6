package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/trackerview/internal/config"
	"github.com/hupe1980/trackerview/internal/filter"
	"github.com/hupe1980/trackerview/internal/session"
)

// filterFlags holds the filter actions given on the command line.
type filterFlags struct {
	state       string
	selectAll   []string
	unselectAll []string
	selects     []string
	unselects   []string
	selectOne   []string
	clicks      []string
}

// registerFilterFlags adds --state and the filter action flags to a cobra
// command.
func registerFilterFlags(cmd *cobra.Command, ff *filterFlags) {
	cmd.Flags().StringVar(&ff.state, "state", "", "restore filter selections from a state file")
	registerActionFlags(cmd, ff)
}

func registerActionFlags(cmd *cobra.Command, ff *filterFlags) {
	f := cmd.Flags()
	f.StringArrayVar(&ff.selectAll, "select-all", nil, "select every option of a filter (key)")
	f.StringArrayVar(&ff.unselectAll, "unselect-all", nil, "unselect every option of a filter (key)")
	f.StringArrayVar(&ff.selects, "select", nil, "select options (key=value or key=v1|v2)")
	f.StringArrayVar(&ff.unselects, "unselect", nil, "unselect options (key=value or key=v1|v2)")
	f.StringArrayVar(&ff.selectOne, "select-one", nil, "select exactly one option (key=value)")
	f.StringArrayVar(&ff.clicks, "click", nil, "click an option like a legend entry (key=value)")

	for _, name := range []string{"select", "unselect", "select-one", "click"} {
		_ = cmd.RegisterFlagCompletionFunc(name, completeFilterKeys("="))
	}

	for _, name := range []string{"select-all", "unselect-all"} {
		_ = cmd.RegisterFlagCompletionFunc(name, completeFilterKeys(""))
	}
}

// completeFilterKeys completes filter keys followed by suffix.
func completeFilterKeys(suffix string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := filter.Names()
		out := make([]string, len(names))

		for i, n := range names {
			out[i] = n + suffix
		}

		directive := cobra.ShellCompDirectiveNoFileComp
		if suffix != "" {
			directive |= cobra.ShellCompDirectiveNoSpace
		}

		return out, directive
	}
}

// actions parses the flags into session actions. Flags are applied grouped
// by kind in the order select-all, unselect-all, select, unselect,
// select-one, click; within a kind the command-line order is kept.
func (ff *filterFlags) actions() ([]session.Action, error) {
	groups := []struct {
		op    session.Op
		specs []string
	}{
		{session.OpSelectAll, ff.selectAll},
		{session.OpUnselectAll, ff.unselectAll},
		{session.OpSelect, ff.selects},
		{session.OpUnselect, ff.unselects},
		{session.OpSelectOne, ff.selectOne},
		{session.OpClick, ff.clicks},
	}

	var out []session.Action

	for _, g := range groups {
		for _, spec := range g.specs {
			a, err := session.ParseAction(g.op, spec)
			if err != nil {
				return nil, err
			}

			out = append(out, a)
		}
	}

	return out, nil
}

// renderFlags holds the output flags of the view commands.
type renderFlags struct {
	output string
	all    bool
}

func registerRenderFlags(cmd *cobra.Command, rf *renderFlags) {
	f := cmd.Flags()
	f.StringP("format", "f", config.DefaultFormat, "output format: table, csv, json, yaml, markdown, html")
	f.StringVarP(&rf.output, "output", "o", "", "write to file instead of stdout")
	f.BoolVar(&rf.all, "all", false, "include hidden rows")
}
