package filter

import (
	"fmt"

	"github.com/hupe1980/trackerview/internal/tracker"
)

// Filter keys.
const (
	Status                  = "status"
	Country                 = "country"
	UseCase                 = "use_case"
	Technology              = "technology"
	Architecture            = "architecture"
	Infrastructure          = "infrastructure"
	Access                  = "access"
	CorporatePartnership    = "corporate_partnership"
	CrossborderPartnerships = "crossborder_partnerships"
)

// Definition describes one filter of a Set.
type Definition struct {
	// Name is the filter key.
	Name string
	// Accessor reads the row values matched against the filter.
	Accessor Accessor
	// Vocabulary marks filters seeded from an external ordered vocabulary
	// instead of the values present in the data.
	Vocabulary bool
}

func one(v string) []string { return []string{v} }

// Definitions returns the filters of a Set in canonical order.
func Definitions() []Definition {
	return []Definition{
		{Name: Status, Accessor: func(r tracker.Row) []string { return one(r.Categories.NewStatus) }, Vocabulary: true},
		{Name: Country, Accessor: func(r tracker.Row) []string { return one(r.Name) }},
		{Name: UseCase, Accessor: func(r tracker.Row) []string { return one(r.Categories.UseCase) }},
		{Name: Technology, Accessor: func(r tracker.Row) []string { return one(r.Categories.Technology) }},
		{Name: Architecture, Accessor: func(r tracker.Row) []string { return one(r.Categories.Architecture) }},
		{Name: Infrastructure, Accessor: func(r tracker.Row) []string { return one(r.Categories.Infrastructure) }},
		{Name: Access, Accessor: func(r tracker.Row) []string { return one(r.Categories.Access) }},
		{Name: CorporatePartnership, Accessor: func(r tracker.Row) []string { return one(r.Categories.CorporatePartnership) }},
		{Name: CrossborderPartnerships, Accessor: func(r tracker.Row) []string { return one(r.Categories.CrossborderPartnerships) }},
	}
}

// Names returns the filter keys in canonical order.
func Names() []string {
	defs := Definitions()
	names := make([]string, len(defs))

	for i, d := range defs {
		names[i] = d.Name
	}

	return names
}

// Snapshot maps filter keys to their options at one point in time.
type Snapshot map[string]State

// Set holds the filters of one session.
type Set struct {
	defs    []Definition
	filters []*Multi
	byName  map[string]*Multi
}

// NewSet creates the canonical filters, all empty.
func NewSet() *Set {
	defs := Definitions()

	s := &Set{
		defs:    defs,
		filters: make([]*Multi, len(defs)),
		byName:  make(map[string]*Multi, len(defs)),
	}

	for i, d := range defs {
		m := NewMulti(d.Name, d.Accessor)
		s.filters[i] = m
		s.byName[d.Name] = m
	}

	return s
}

// Init seeds every filter: vocabulary filters from statuses, all others from
// the distinct values in rows.
func (s *Set) Init(rows []tracker.Row, statuses []string) {
	for i, d := range s.defs {
		if d.Vocabulary {
			s.filters[i].InitValues(statuses)
			continue
		}

		s.filters[i].Init(rows)
	}
}

// All returns the filters in canonical order.
func (s *Set) All() []*Multi {
	return append([]*Multi(nil), s.filters...)
}

// ByName returns the filter with the given key.
func (s *Set) ByName(name string) (*Multi, error) {
	m, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown filter %q (available: %v)", name, Names())
	}

	return m, nil
}

// Snapshot copies the current options of every filter.
func (s *Set) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.filters))
	for _, m := range s.filters {
		snap[m.Name()] = m.State()
	}

	return snap
}

// Subscribe registers fn on every filter. fn receives the key of the filter
// that changed. It is not called for the initial values.
func (s *Set) Subscribe(fn func(name string)) func() {
	unsubs := make([]func(), 0, len(s.filters))

	for _, m := range s.filters {
		name := m.Name()
		primed := false

		unsubs = append(unsubs, m.Subscribe(func(State) {
			if !primed {
				primed = true
				return
			}

			fn(name)
		}))
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
