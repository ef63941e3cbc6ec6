// Package scale builds the color scales used to annotate the tracker view.
// A ColorScale is a plain lookup from a categorical value to a color; values
// without an entry have no color.
package scale

import (
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/hupe1980/trackerview/internal/tracker"
)

// ColorScale maps a categorical value to a display color.
type ColorScale map[string]string

// Color returns the color for value, or "" when the scale has none.
func (c ColorScale) Color(value string) string {
	return c[value]
}

// DefaultPalette is the ordinal palette used for categories without explicit
// colors.
var DefaultPalette = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Ordinal assigns palette colors to domain in order, cycling when the
// domain is longer than the palette.
func Ordinal(domain, palette []string) ColorScale {
	c := make(ColorScale, len(domain))
	if len(palette) == 0 {
		return c
	}

	i := 0

	for _, v := range domain {
		if _, ok := c[v]; ok {
			continue
		}

		c[v] = palette[i%len(palette)]
		i++
	}

	return c
}

// FromLevels builds a scale from the status vocabulary.
func FromLevels(levels []tracker.StatusLevel) ColorScale {
	c := make(ColorScale, len(levels))
	for _, l := range levels {
		c[l.Name] = l.Color
	}

	return c
}

// Domain returns the distinct non-empty values of field across rows,
// sorted case-insensitively.
func Domain(rows []tracker.Row, field func(tracker.Row) string) []string {
	seen := sets.New[string]()

	for _, r := range rows {
		if v := field(r); v != "" {
			seen.Insert(v)
		}
	}

	values := seen.UnsortedList()
	slices.SortFunc(values, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}

		return strings.Compare(a, b)
	})

	return values
}

// withOverrides returns a copy of c with overrides applied on top.
func withOverrides(c ColorScale, overrides map[string]string) ColorScale {
	out := make(ColorScale, len(c)+len(overrides))
	for k, v := range c {
		out[k] = v
	}

	for k, v := range overrides {
		out[k] = v
	}

	return out
}
