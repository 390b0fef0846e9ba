package domain

import (
	"fmt"
	"strings"
)

// Filter selects which tasks a list view shows and how they are ordered.
type Filter int

const (
	// FilterUncompleted is the default view.
	FilterUncompleted Filter = iota
	FilterCompleted
	FilterAll
)

// Filters returns every filter in the order the tabs are shown.
func Filters() []Filter {
	return []Filter{FilterAll, FilterUncompleted, FilterCompleted}
}

// String returns the flag spelling of the filter.
func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterCompleted:
		return "completed"
	default:
		return "uncompleted"
	}
}

// Label returns the tab caption.
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterCompleted:
		return "Completed"
	default:
		return "Uncompleted"
	}
}

// Matches reports whether the task belongs in the filter's view.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterUncompleted:
		return !t.Completed
	default:
		return true
	}
}

// ParseFilter reads a filter name. "no-filter" is accepted for "all".
// A blank name is an error; omit the argument to get the default view.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "no-filter", "no filter":
		return FilterAll, nil
	case "uncompleted":
		return FilterUncompleted, nil
	case "completed":
		return FilterCompleted, nil
	default:
		return FilterUncompleted, fmt.Errorf("unknown filter %q (want all, uncompleted or completed)", s)
	}
}

// Set implements pflag.Value.
func (f *Filter) Set(s string) error {
	parsed, err := ParseFilter(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Filter) Type() string {
	return "filter"
}
