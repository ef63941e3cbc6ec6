package session

import (
	"fmt"
	"log/slog"
	"strings"
)

// Op is a filter mutation.
type Op string

// Supported operations.
const (
	OpClick       Op = "click"
	OpSelect      Op = "select"
	OpUnselect    Op = "unselect"
	OpSelectOne   Op = "select-one"
	OpSelectAll   Op = "select-all"
	OpUnselectAll Op = "unselect-all"
)

// Action is one mutation of a named filter.
type Action struct {
	Op     Op
	Filter string
	Values []string
}

func (a Action) String() string {
	if len(a.Values) == 0 {
		return fmt.Sprintf("%s %s", a.Op, a.Filter)
	}

	return fmt.Sprintf("%s %s=%s", a.Op, a.Filter, strings.Join(a.Values, "|"))
}

// ParseAction parses "filter=value" or "filter=v1|v2". Operations that take
// no values accept a bare filter key.
func ParseAction(op Op, spec string) (Action, error) {
	name, rest, hasValue := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)

	if name == "" {
		return Action{}, fmt.Errorf("invalid %s %q: expected filter=value", op, spec)
	}

	a := Action{Op: op, Filter: name}

	switch op {
	case OpSelectAll, OpUnselectAll:
		if hasValue {
			return Action{}, fmt.Errorf("invalid %s %q: expected a filter name only", op, spec)
		}

		return a, nil
	case OpClick, OpSelect, OpUnselect, OpSelectOne:
	default:
		return Action{}, fmt.Errorf("unknown operation %q", op)
	}

	if !hasValue {
		return Action{}, fmt.Errorf("invalid %s %q: expected filter=value", op, spec)
	}

	for _, v := range strings.Split(rest, "|") {
		a.Values = append(a.Values, strings.TrimSpace(v))
	}

	if op == OpSelectOne && len(a.Values) != 1 {
		return Action{}, fmt.Errorf("invalid %s %q: exactly one value expected", op, spec)
	}

	return a, nil
}

// Apply performs actions in order and recomputes the view once.
func (s *Session) Apply(actions ...Action) error {
	for _, a := range actions {
		if _, err := s.Filters.ByName(a.Filter); err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}

		switch a.Op {
		case OpClick, OpSelect, OpUnselect, OpSelectAll, OpUnselectAll:
		case OpSelectOne:
			if len(a.Values) != 1 {
				return fmt.Errorf("%s: exactly one value expected", a)
			}
		default:
			return fmt.Errorf("unknown operation %q", a.Op)
		}
	}

	s.View.Batch(func() {
		for _, a := range actions {
			m, _ := s.Filters.ByName(a.Filter)

			switch a.Op {
			case OpClick:
				m.Click(a.Values...)
			case OpSelect:
				m.Select(a.Values...)
			case OpUnselect:
				m.Unselect(a.Values...)
			case OpSelectOne:
				m.SelectOne(a.Values[0])
			case OpSelectAll:
				m.SelectAll()
			case OpUnselectAll:
				m.UnselectAll()
			}

			s.logger.Debug("filter action applied", slog.String("action", a.String()))
		}
	})

	return nil
}
