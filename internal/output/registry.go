package output

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/trackerview/internal/view"
)

// Options configures a Formatter.
type Options struct {
	// All includes hidden rows and adds a show column.
	All bool
	// NoColor disables ANSI color swatches in the table format.
	NoColor bool
}

// Formatter renders view rows.
type Formatter func(rows []view.Row, opts Options) ([]byte, error)

// Registry maps format names to Formatter functions.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter under the given format name.
// Existing entries for the same name are overwritten.
func (r *Registry) Register(name string, f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formatters[name] = f
}

// Formatter returns the formatter for the given format, or an error if not
// found.
func (r *Registry) Formatter(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, r.availableLocked())
	}

	return f, nil
}

// Render looks up format and renders rows with it.
func (r *Registry) Render(format string, rows []view.Row, opts Options) ([]byte, error) {
	f, err := r.Formatter(format)
	if err != nil {
		return nil, err
	}

	return f(rows, opts)
}

// Formats returns the sorted list of registered format names.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.formatsLocked()
}

// AvailableFormats returns a comma-separated string of registered format
// names.
func (r *Registry) AvailableFormats() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.availableLocked()
}

func (r *Registry) formatsLocked() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) availableLocked() string {
	formats := r.formatsLocked()
	if len(formats) == 0 {
		return "none"
	}

	return strings.Join(formats, ", ")
}

// DefaultRegistry returns a registry with the built-in formats: table, csv,
// json, yaml, markdown and html.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("table", FormatTable)
	r.Register("csv", FormatCSV)
	r.Register("json", FormatJSON)
	r.Register("yaml", FormatYAML)
	r.Register("markdown", FormatMarkdown)
	r.Register("html", FormatHTML)

	return r
}
