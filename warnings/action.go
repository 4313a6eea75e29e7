package warnings

import (
	"errors"
	"strings"
)

// Action decides what happens to a warning that matches a filter.
type Action string

const (
	// ActionDefault prints the first occurrence for each source location.
	ActionDefault Action = "default"
	// ActionOnce prints only the first occurrence for the filter's (category, module) key.
	ActionOnce Action = "once"
	// ActionAlways prints every occurrence.
	ActionAlways Action = "always"
	// ActionIgnore never prints.
	ActionIgnore Action = "ignore"
	// ActionError turns the warning into a *WarningError returned to the caller.
	ActionError Action = "error"
	// ActionModule prints the first occurrence for each source module.
	ActionModule Action = "module"
)

// actions is ordered the way prefixes are resolved by ParseAction.
var actions = []Action{ActionDefault, ActionAlways, ActionIgnore, ActionModule, ActionOnce, ActionError}

// ParseAction resolves an action name. Unambiguous prefixes such as "i" or "err" are accepted
// and an empty string means ActionDefault.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ActionDefault, nil
	}
	for _, a := range actions {
		if strings.HasPrefix(string(a), s) {
			return a, nil
		}
	}

	return "", &ConfigurationError{Field: "action", Value: s, Err: errors.New("unknown action")}
}

// Valid reports whether a is one of the defined actions.
func (a Action) Valid() bool {
	for _, known := range actions {
		if a == known {
			return true
		}
	}

	return false
}

func (a Action) String() string { return string(a) }
