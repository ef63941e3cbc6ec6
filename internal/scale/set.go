package scale

import (
	"fmt"
	"slices"

	"github.com/hupe1980/trackerview/internal/tracker"
)

// Scale keys. They match the filter keys of the colored categories.
const (
	Status         = "status"
	Country        = "country"
	UseCase        = "use_case"
	Technology     = "technology"
	Architecture   = "architecture"
	Infrastructure = "infrastructure"
	Access         = "access"
)

// Names returns the scale keys in canonical order.
func Names() []string {
	return []string{Status, Country, UseCase, Technology, Architecture, Infrastructure, Access}
}

// fields maps the ordinal scales to the row field they color.
var fields = map[string]func(tracker.Row) string{
	Country:        func(r tracker.Row) string { return r.Name },
	UseCase:        func(r tracker.Row) string { return r.Categories.UseCase },
	Technology:     func(r tracker.Row) string { return r.Categories.Technology },
	Architecture:   func(r tracker.Row) string { return r.Categories.Architecture },
	Infrastructure: func(r tracker.Row) string { return r.Categories.Infrastructure },
	Access:         func(r tracker.Row) string { return r.Categories.Access },
}

// Options configures Build.
type Options struct {
	// Levels is the status vocabulary with its colors.
	Levels []tracker.StatusLevel
	// Palette is the ordinal palette. DefaultPalette is used when empty.
	Palette []string
	// Overrides holds explicit colors per scale key and value.
	Overrides map[string]map[string]string
}

// Set holds the seven color scales of a session.
type Set struct {
	scales map[string]ColorScale
	subs   map[int]func(name string)
	nextID int
}

// NewSet creates a set of empty scales.
func NewSet() *Set {
	s := &Set{
		scales: make(map[string]ColorScale, len(Names())),
		subs:   make(map[int]func(string)),
	}

	for _, name := range Names() {
		s.scales[name] = ColorScale{}
	}

	return s
}

// Build creates a set with ordinal scales over the values in rows and the
// status scale from opts.Levels.
func Build(rows []tracker.Row, opts Options) *Set {
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	s := NewSet()
	s.scales[Status] = withOverrides(FromLevels(opts.Levels), opts.Overrides[Status])

	for name, field := range fields {
		s.scales[name] = withOverrides(Ordinal(Domain(rows, field), palette), opts.Overrides[name])
	}

	return s
}

// Get returns the scale with the given key. Unknown keys yield an empty
// scale.
func (s *Set) Get(name string) ColorScale {
	if c, ok := s.scales[name]; ok {
		return c
	}

	return ColorScale{}
}

// Update replaces the scale with the given key and notifies subscribers.
func (s *Set) Update(name string, c ColorScale) error {
	if !slices.Contains(Names(), name) {
		return fmt.Errorf("unknown color scale %q", name)
	}

	if c == nil {
		c = ColorScale{}
	}

	s.scales[name] = c

	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	for _, id := range ids {
		s.subs[id](name)
	}

	return nil
}

// Subscribe registers fn to be called with the key of every updated scale.
func (s *Set) Subscribe(fn func(name string)) func() {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() { delete(s.subs, id) }
}
