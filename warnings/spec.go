package warnings

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// FilterSpec is a parsed "action:message:category:module" filter string, the format used by
// the OVBIND_WARNINGS environment variable and the warnings.filters config key. Message and
// module are literal strings, not patterns.
type FilterSpec struct {
	Action   Action
	Message  string
	Category *Category
	Module   string
}

func (s FilterSpec) String() string {
	return strings.Join([]string{string(s.Action), s.Message, s.Category.Name(), s.Module}, ":")
}

// ParseFilterSpec parses a single filter string. Trailing fields may be omitted; an empty
// category means Warning.
func ParseFilterSpec(s string) (FilterSpec, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 4 {
		return FilterSpec{}, &ConfigurationError{Field: "spec", Value: s, Err: errors.New("too many fields")}
	}
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	action, err := ParseAction(parts[0])
	if err != nil {
		return FilterSpec{}, err
	}

	category := Warning
	if parts[2] != "" {
		c, ok := LookupCategory(parts[2])
		if !ok {
			return FilterSpec{}, &ConfigurationError{Field: "category", Value: parts[2], Err: errors.New("unknown category")}
		}
		category = c
	}

	return FilterSpec{
		Action:   action,
		Message:  parts[1],
		Category: category,
		Module:   parts[3],
	}, nil
}

// ParseFilterSpecs parses a comma separated list of filter strings, skipping empty entries.
func ParseFilterSpecs(s string) ([]FilterSpec, error) {
	var specs []FilterSpec
	for i, raw := range strings.Split(s, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		spec, err := ParseFilterSpec(raw)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// Apply registers each spec in order.
func (r *Registry) Apply(specs ...FilterSpec) error {
	for _, s := range specs {
		var opts []FilterOption
		if s.Message != "" {
			opts = append(opts, WithMessage(regexp.QuoteMeta(s.Message)))
		}
		if err := r.RegisterFilter(s.Category, regexp.QuoteMeta(s.Module), s.Action, opts...); err != nil {
			return fmt.Errorf("apply %q: %w", s.String(), err)
		}
	}

	return nil
}
