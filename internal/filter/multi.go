package filter

import (
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/hupe1980/trackerview/internal/tracker"
)

// Accessor extracts the categorical values of a row for one filter. A
// multi-valued field returns all of its values; they are flattened.
type Accessor func(tracker.Row) []string

// Multi is the selection state of one categorical dimension.
type Multi struct {
	name     string
	accessor Accessor
	state    State

	subs   map[int]func(State)
	nextID int
}

// NewMulti creates an empty filter named name whose values are read from
// rows with accessor.
func NewMulti(name string, accessor Accessor) *Multi {
	return &Multi{
		name:     name,
		accessor: accessor,
		state:    State{},
		subs:     make(map[int]func(State)),
	}
}

// Name returns the filter key.
func (m *Multi) Name() string { return m.name }

// Values returns the values of row for this filter.
func (m *Multi) Values(row tracker.Row) []string {
	if m.accessor == nil {
		return nil
	}

	return m.accessor(row)
}

// State returns a copy of the current options.
func (m *Multi) State() State {
	return m.state.Clone()
}

// Set replaces the options with a copy of s.
func (m *Multi) Set(s State) {
	if s == nil {
		s = State{}
	}

	m.state = s.Clone()
	m.notify()
}

// Subscribe registers fn, calls it once with the current options and then
// after every mutation. The returned function removes the subscription.
func (m *Multi) Subscribe(fn func(State)) func() {
	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	fn(m.State())

	return func() { delete(m.subs, id) }
}

// Init populates the filter with the distinct values found in rows, sorted
// case-insensitively, all selected.
func (m *Multi) Init(rows []tracker.Row) {
	seen := sets.New[string]()
	values := make([]string, 0)

	for _, row := range rows {
		for _, v := range m.Values(row) {
			if seen.Has(v) {
				continue
			}

			seen.Insert(v)
			values = append(values, v)
		}
	}

	slices.SortStableFunc(values, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	m.InitValues(values)
}

// InitValues populates the filter from an explicit vocabulary, keeping its
// order. Duplicates are dropped.
func (m *Multi) InitValues(values []string) {
	seen := sets.New[string]()
	state := make(State, 0, len(values))

	for _, v := range values {
		if seen.Has(v) {
			continue
		}

		seen.Insert(v)
		state = append(state, Option{ID: v, Name: v, Selected: true})
	}

	m.state = state
	m.notify()
}

// Select marks the given ids as selected.
func (m *Multi) Select(ids ...string) {
	want := sets.New(ids...)

	m.update(func(o Option) bool {
		return o.Selected || want.Has(o.ID)
	})
}

// Unselect marks the given ids as not selected.
func (m *Multi) Unselect(ids ...string) {
	want := sets.New(ids...)

	m.update(func(o Option) bool {
		return o.Selected && !want.Has(o.ID)
	})
}

// SelectAll selects every option.
func (m *Multi) SelectAll() {
	m.update(func(Option) bool { return true })
}

// UnselectAll clears every option.
func (m *Multi) UnselectAll() {
	m.update(func(Option) bool { return false })
}

// SelectOne leaves only id selected.
func (m *Multi) SelectOne(id string) {
	m.UnselectAll()
	m.Select(id)
}

// Click applies the interactive toggle. When every option is selected the
// clicked ids are isolated; otherwise their selection is flipped. A filter
// is never left without a selected option: if the result has none, every
// option is selected again.
func (m *Multi) Click(ids ...string) {
	want := sets.New(ids...)
	isolate := AreAllSelected(m.state)

	next := make(State, len(m.state))
	for i, o := range m.state {
		switch {
		case isolate:
			o.Selected = want.Has(o.ID)
		case want.Has(o.ID):
			o.Selected = !o.Selected
		}

		next[i] = o
	}

	if AreAllUnselected(next) {
		for i := range next {
			next[i].Selected = true
		}
	}

	m.state = next
	m.notify()
}

// ApplyBoolArray sets the selection positionally, aligning the last value
// with the last option. Options without a corresponding value are cleared.
func (m *Multi) ApplyBoolArray(values []bool) {
	next := make(State, len(m.state))
	offset := len(m.state) - len(values)

	for i, o := range m.state {
		j := i - offset
		o.Selected = j >= 0 && values[j]
		next[i] = o
	}

	m.state = next
	m.notify()
}

// update replaces every option's selection with selected(option).
func (m *Multi) update(selected func(Option) bool) {
	next := make(State, len(m.state))
	for i, o := range m.state {
		o.Selected = selected(o)
		next[i] = o
	}

	m.state = next
	m.notify()
}

func (m *Multi) notify() {
	if len(m.subs) == 0 {
		return
	}

	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	for _, id := range ids {
		if fn, ok := m.subs[id]; ok {
			fn(m.State())
		}
	}
}
