package output

import (
	"encoding/json"
	"fmt"
	"strconv"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/trackerview/internal/filter"
)

// FilterListing is the state of one filter for display.
type FilterListing struct {
	Name    string       `json:"name"`
	Options filter.State `json:"options"`
}

// ListFilters captures every filter of set in canonical order.
func ListFilters(set *filter.Set) []FilterListing {
	all := set.All()
	out := make([]FilterListing, len(all))

	for i, m := range all {
		out[i] = FilterListing{Name: m.Name(), Options: m.State()}
	}

	return out
}

// FormatFilters renders listings as table, json or yaml.
func FormatFilters(format string, listings []FilterListing) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("serializing JSON: %w", err)
		}

		return append(out, '\n'), nil
	case "yaml":
		out, err := sigsyaml.Marshal(listings)
		if err != nil {
			return nil, fmt.Errorf("serializing YAML: %w", err)
		}

		return out, nil
	case "table":
		table := [][]cell{{{text: "FILTER"}, {text: "OPTION"}, {text: "SELECTED"}}}

		for _, l := range listings {
			for _, o := range l.Options {
				table = append(table, []cell{{text: l.Name}, {text: o.Name}, {text: strconv.FormatBool(o.Selected)}})
			}
		}

		return renderTable(table, false), nil
	default:
		return nil, fmt.Errorf("unsupported filter listing format %q (available: json, table, yaml)", format)
	}
}
