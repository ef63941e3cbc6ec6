package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func state(selected ...bool) State {
	ids := []string{"a", "b", "c", "d"}
	s := make(State, len(selected))

	for i, sel := range selected {
		s[i] = Option{ID: ids[i], Name: ids[i], Selected: sel}
	}

	return s
}

// ---------------------------------------------------------------------------
// HasOverlap
// ---------------------------------------------------------------------------

func TestHasOverlap(t *testing.T) {
	s := state(true, false, true)

	tests := []struct {
		name   string
		values []string
		want   bool
	}{
		{"empty values", nil, false},
		{"selected", []string{"a"}, true},
		{"unselected", []string{"b"}, false},
		{"unknown", []string{"z"}, false},
		{"any of many", []string{"b", "z", "c"}, true},
		{"none of many", []string{"b", "z"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasOverlap(tt.values, s))
		})
	}
}

func TestHasOverlap_EmptyValuesAlwaysFalse(t *testing.T) {
	for _, s := range []State{nil, state(), state(true), state(true, true, true)} {
		assert.False(t, HasOverlap([]string{}, s))
	}
}

func TestHasOverlap_AgreesWithSelection(t *testing.T) {
	s := state(false, true, true, false)
	sel := s.Selection()

	for _, v := range []string{"a", "b", "c", "d", "x"} {
		assert.Equal(t, HasOverlap([]string{v}, s), sel.Has(v), "value=%s", v)
	}
}

// ---------------------------------------------------------------------------
// AreAllSelected / AreAllUnselected
// ---------------------------------------------------------------------------

func TestAreAllSelected(t *testing.T) {
	assert.True(t, AreAllSelected(nil))
	assert.True(t, AreAllSelected(state(true, true)))
	assert.False(t, AreAllSelected(state(true, false)))
}

func TestAreAllUnselected(t *testing.T) {
	assert.True(t, AreAllUnselected(nil))
	assert.True(t, AreAllUnselected(state(false, false)))
	assert.False(t, AreAllUnselected(state(false, true)))
}

// ---------------------------------------------------------------------------
// State helpers
// ---------------------------------------------------------------------------

func TestState_Clone(t *testing.T) {
	s := state(true, true)
	c := s.Clone()
	c[0].Selected = false

	assert.True(t, s[0].Selected)
	assert.Nil(t, State(nil).Clone())
}

func TestState_IDsAndCount(t *testing.T) {
	s := state(true, false, true)

	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.Equal(t, 2, s.SelectedCount())
	assert.ElementsMatch(t, []string{"a", "c"}, s.Selection().UnsortedList())
}
