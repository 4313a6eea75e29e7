package warnings

import (
	"errors"
	"regexp"
)

// Filter is one rule in a Registry's filter chain.
type Filter struct {
	Action   Action
	Category *Category
	// Module is a regular expression matched against the whole source module path. Empty
	// matches every module.
	Module string
	// Message is a case-insensitive regular expression matched against the start of the
	// warning text. Empty matches every message.
	Message string

	module  *regexp.Regexp
	message *regexp.Regexp
}

// FilterOption customizes a Filter built by RegisterFilter.
type FilterOption func(*Filter)

// WithMessage restricts a filter to warnings whose text starts with a match of pattern.
func WithMessage(pattern string) FilterOption {
	return func(f *Filter) {
		f.Message = pattern
	}
}

// NewFilter validates and compiles a filter. Every problem is reported as a *ConfigurationError.
func NewFilter(action Action, category *Category, modulePattern string, opts ...FilterOption) (Filter, error) {
	f := Filter{
		Action:   action,
		Category: category,
		Module:   modulePattern,
	}
	for _, opt := range opts {
		opt(&f)
	}

	if !f.Action.Valid() {
		return Filter{}, &ConfigurationError{Field: "action", Value: string(f.Action), Err: errors.New("unknown action")}
	}
	if f.Category == nil {
		return Filter{}, &ConfigurationError{Field: "category", Value: "<nil>", Err: errors.New("category is required")}
	}
	if _, ok := LookupCategory(f.Category.Name()); !ok {
		return Filter{}, &ConfigurationError{Field: "category", Value: f.Category.Name(), Err: errors.New("category is not registered")}
	}

	if f.Module != "" {
		re, err := regexp.Compile(`^(?:` + f.Module + `)$`)
		if err != nil {
			return Filter{}, &ConfigurationError{Field: "module", Value: f.Module, Err: err}
		}
		f.module = re
	}
	if f.Message != "" {
		re, err := regexp.Compile(`(?i)^(?:` + f.Message + `)`)
		if err != nil {
			return Filter{}, &ConfigurationError{Field: "message", Value: f.Message, Err: err}
		}
		f.message = re
	}

	return f, nil
}

// Matches reports whether ev is handled by f.
func (f Filter) Matches(ev Event) bool {
	if !ev.Category.IsSubclassOf(f.Category) {
		return false
	}
	if f.module != nil && !f.module.MatchString(ev.SourceModule) {
		return false
	}
	if f.message != nil && !f.message.MatchString(ev.Message) {
		return false
	}

	return true
}

type filterKey struct {
	category *Category
	module   string
	message  string
}

func (f Filter) key() filterKey {
	return filterKey{category: f.Category, module: f.Module, message: f.Message}
}
