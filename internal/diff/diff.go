// Package diff compares two renderings of the tracker view: a unified text
// diff of the rendered output and a name-level summary of which rows became
// visible or hidden.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/hupe1980/trackerview/internal/view"
)

// Result holds a unified diff.
type Result struct {
	Unified  string
	Changed  bool
	Hunks    []string
	OldLabel string
	NewLabel string
}

// Options configures Compute.
type Options struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultOptions labels the sides "from" and "to" with three context lines.
func DefaultOptions() Options {
	return Options{
		OldLabel: "from",
		NewLabel: "to",
		Context:  3,
	}
}

// Compute returns the unified diff from oldText to newText.
func Compute(oldText, newText string, opts Options) (*Result, error) {
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(oldText),
		B:        lines(newText),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	res := &Result{
		Unified:  unified,
		Changed:  unified != "",
		OldLabel: opts.OldLabel,
		NewLabel: opts.NewLabel,
	}

	if res.Changed {
		res.Hunks = hunks(unified)
	}

	return res, nil
}

// Visibility lists the row names whose visibility differs between two views.
type Visibility struct {
	Revealed []string `json:"revealed"`
	Hidden   []string `json:"hidden"`
}

// Empty reports whether no row changed visibility.
func (v Visibility) Empty() bool {
	return len(v.Revealed) == 0 && len(v.Hidden) == 0
}

// CompareVisibility reports rows shown in to but not in from (Revealed) and
// rows shown in from but not in to (Hidden). Names are sorted.
func CompareVisibility(from, to []view.Row) Visibility {
	before := shownNames(from)
	after := shownNames(to)

	return Visibility{
		Revealed: sets.List(after.Difference(before)),
		Hidden:   sets.List(before.Difference(after)),
	}
}

func shownNames(rows []view.Row) sets.Set[string] {
	s := sets.New[string]()

	for _, r := range rows {
		if r.Show {
			s.Insert(r.Name.Name)
		}
	}

	return s
}

// Write prints res to w, colorizing when color is set.
func Write(w io.Writer, res *Result, color bool) {
	if !res.Changed {
		_, _ = fmt.Fprintln(w, "No differences found.")
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(res.Unified, "\n"), "\n") {
		if color {
			line = colorize(line)
		}

		_, _ = fmt.Fprintln(w, line)
	}
}

// WriteVisibility prints a one-line-per-row summary of v.
func WriteVisibility(w io.Writer, v Visibility) {
	for _, name := range v.Revealed {
		_, _ = fmt.Fprintf(w, "+ %s\n", name)
	}

	for _, name := range v.Hidden {
		_, _ = fmt.Fprintf(w, "- %s\n", name)
	}
}

func colorize(line string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		cyan  = "\033[36m"
		bold  = "\033[1m"
		reset = "\033[0m"
	)

	var code string

	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		code = bold
	case strings.HasPrefix(line, "@@"):
		code = cyan
	case strings.HasPrefix(line, "-"):
		code = red
	case strings.HasPrefix(line, "+"):
		code = green
	default:
		return line
	}

	return code + line + reset
}

func hunks(unified string) []string {
	var (
		out     []string
		current strings.Builder
	)

	for _, line := range strings.SplitAfter(unified, "\n") {
		if strings.HasPrefix(line, "@@") && current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
		}

		current.WriteString(line)
	}

	if current.Len() > 0 {
		out = append(out, current.String())
	}

	return out
}

// lines splits s keeping line terminators, as difflib expects.
func lines(s string) []string {
	if s == "" {
		return []string{""}
	}

	return strings.SplitAfter(s, "\n")
}
