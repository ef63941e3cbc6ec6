package view

import (
	"slices"

	"github.com/hupe1980/trackerview/internal/filter"
	"github.com/hupe1980/trackerview/internal/scale"
	"github.com/hupe1980/trackerview/internal/tracker"
)

// Store keeps the derived view in sync with its inputs. It subscribes to
// every filter and color scale and recomputes the complete view
// synchronously whenever one of them, or the raw rows, change. Reads never
// observe a stale view.
type Store struct {
	rows    []tracker.Row
	filters *filter.Set
	scales  *scale.Set

	current []Row
	batch   int
	dirty   bool
	runs    int

	subs   map[int]func([]Row)
	nextID int
	unsubs []func()
}

// NewStore creates a store over filters and scales with no rows.
func NewStore(filters *filter.Set, scales *scale.Set) *Store {
	if scales == nil {
		scales = scale.NewSet()
	}

	s := &Store{
		filters: filters,
		scales:  scales,
		rows:    []tracker.Row{},
		subs:    make(map[int]func([]Row)),
	}

	s.unsubs = append(s.unsubs,
		filters.Subscribe(func(string) { s.invalidate() }),
		scales.Subscribe(func(string) { s.invalidate() }),
	)

	s.recompute()

	return s
}

// SetRows replaces the raw rows.
func (s *Store) SetRows(rows []tracker.Row) {
	if rows == nil {
		rows = []tracker.Row{}
	}

	s.rows = rows
	s.invalidate()
}

// RawRows returns the raw rows the view is derived from.
func (s *Store) RawRows() []tracker.Row {
	return s.rows
}

// Rows returns a copy of the current view.
func (s *Store) Rows() []Row {
	return slices.Clone(s.current)
}

// Shown returns the rows of the current view that pass every filter.
func (s *Store) Shown() []Row {
	return Shown(s.current)
}

// Stats summarizes the current view.
func (s *Store) Stats() Stats {
	return Summarize(s.current)
}

// Recomputations returns how often the view has been derived.
func (s *Store) Recomputations() int {
	return s.runs
}

// Batch runs fn and recomputes at most once afterwards, however many inputs
// fn changes.
func (s *Store) Batch(fn func()) {
	s.batch++

	defer func() {
		s.batch--
		if s.batch == 0 && s.dirty {
			s.recompute()
		}
	}()

	fn()
}

// Subscribe registers fn, calls it with the current view and then after
// every recomputation.
func (s *Store) Subscribe(fn func([]Row)) func() {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	fn(s.Rows())

	return func() { delete(s.subs, id) }
}

// Close detaches the store from its inputs.
func (s *Store) Close() {
	for _, u := range s.unsubs {
		u()
	}

	s.unsubs = nil
}

func (s *Store) invalidate() {
	s.dirty = true
	if s.batch > 0 {
		return
	}

	s.recompute()
}

func (s *Store) recompute() {
	s.current = Derive(s.rows, s.filters.Snapshot(), s.scales)
	s.dirty = false
	s.runs++

	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	for _, id := range ids {
		if fn, ok := s.subs[id]; ok {
			fn(s.Rows())
		}
	}
}
