package filter

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// Option is one selectable value within a filter. ID and Name are identical.
type Option struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// State is the ordered sequence of options of one filter. IDs are unique.
type State []Option

// Clone returns a copy of s that shares no memory with it.
func (s State) Clone() State {
	if s == nil {
		return nil
	}

	return append(State(nil), s...)
}

// IDs returns the option ids in order.
func (s State) IDs() []string {
	ids := make([]string, len(s))
	for i, o := range s {
		ids[i] = o.ID
	}

	return ids
}

// Selection returns the ids of the selected options.
func (s State) Selection() sets.Set[string] {
	sel := sets.New[string]()

	for _, o := range s {
		if o.Selected {
			sel.Insert(o.ID)
		}
	}

	return sel
}

// SelectedCount returns the number of selected options.
func (s State) SelectedCount() int {
	n := 0

	for _, o := range s {
		if o.Selected {
			n++
		}
	}

	return n
}

// HasOverlap reports whether any of values is the id of a selected option
// in s. It is false for empty values.
func HasOverlap(values []string, s State) bool {
	for _, v := range values {
		for _, o := range s {
			if o.Selected && o.ID == v {
				return true
			}
		}
	}

	return false
}

// AreAllSelected reports whether every option in s is selected. It is true
// for an empty state.
func AreAllSelected(s State) bool {
	for _, o := range s {
		if !o.Selected {
			return false
		}
	}

	return true
}

// AreAllUnselected reports whether no option in s is selected. It is true
// for an empty state.
func AreAllUnselected(s State) bool {
	for _, o := range s {
		if o.Selected {
			return false
		}
	}

	return true
}
